package memory

import "github.com/vladislavdragonenkov/orderdemo/internal/domain"

// SeedMenu возвращает стандартный набор позиций меню демо-сервиса.
// Каждый вызов отдаёт свежий срез, чтобы вызывающие не делили память.
func SeedMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{
			ID:          "pizza-1",
			Name:        "Margherita Pizza",
			Description: "Classic tomato sauce, mozzarella, and fresh basil",
			Price:       12.99,
			Image:       "https://images.unsplash.com/photo-1574071318508-1cdbab80d002",
			Category:    domain.CategoryPizza,
		},
		{
			ID:          "pizza-2",
			Name:        "Pepperoni Pizza",
			Description: "Loaded with pepperoni and melted mozzarella",
			Price:       14.99,
			Image:       "https://images.unsplash.com/photo-1628840042765-356cda07504e",
			Category:    domain.CategoryPizza,
		},
		{
			ID:          "pizza-3",
			Name:        "BBQ Chicken Pizza",
			Description: "Smoky BBQ sauce, grilled chicken, red onions, and cilantro",
			Price:       15.99,
			Image:       "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38",
			Category:    domain.CategoryPizza,
		},
		{
			ID:          "burger-1",
			Name:        "Classic Cheeseburger",
			Description: "Angus beef patty with cheddar, lettuce, tomato, and pickles",
			Price:       10.99,
			Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd",
			Category:    domain.CategoryBurger,
		},
		{
			ID:          "burger-2",
			Name:        "Bacon Smash Burger",
			Description: "Double smashed patties with crispy bacon and special sauce",
			Price:       13.99,
			Image:       "https://images.unsplash.com/photo-1553979459-d2229ba7433b",
			Category:    domain.CategoryBurger,
		},
		{
			ID:          "drink-1",
			Name:        "Cola",
			Description: "Ice-cold classic cola",
			Price:       2.49,
			Image:       "https://images.unsplash.com/photo-1622483767028-3f66f32aef97",
			Category:    domain.CategoryDrink,
		},
		{
			ID:          "drink-2",
			Name:        "Lemonade",
			Description: "Freshly squeezed lemonade with mint",
			Price:       3.49,
			Image:       "https://images.unsplash.com/photo-1621263764928-df1444c5e859",
			Category:    domain.CategoryDrink,
		},
		{
			ID:          "dessert-1",
			Name:        "Chocolate Brownie",
			Description: "Warm fudgy brownie with vanilla ice cream",
			Price:       6.99,
			Image:       "https://images.unsplash.com/photo-1564355808539-22fda35bed7e",
			Category:    domain.CategoryDessert,
		},
		{
			ID:          "dessert-2",
			Name:        "Cheesecake Slice",
			Description: "New York style cheesecake with berry compote",
			Price:       7.99,
			Image:       "https://images.unsplash.com/photo-1567171466295-4afa63d45416",
			Category:    domain.CategoryDessert,
		},
	}
}
