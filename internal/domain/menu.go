package domain

// Category группирует позиции меню по типу блюда.
type Category string

const (
	CategoryPizza   Category = "pizza"
	CategoryBurger  Category = "burger"
	CategoryDrink   Category = "drink"
	CategoryDessert Category = "dessert"
)

// MenuItem описывает позицию меню. Каталог заполняется один раз при старте
// процесса и после этого не изменяется.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	// Price — цена за единицу в основной валюте (двухзначная точность).
	Price    float64  `json:"price"`
	Image    string   `json:"image"`
	Category Category `json:"category"`
}
