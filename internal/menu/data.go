package menu

import "github.com/smartserve/backend/internal/core/model"

var defaultMenu = []model.MenuItem{
	// Burgers
	{ID: "classic_burger", Name: "Classic Burger", Price: 6.99, Tags: []string{"burger", "beef", "main", "hot"}},
	{ID: "cheese_burger", Name: "Cheese Burger", Price: 7.49, Tags: []string{"burger", "beef", "main", "hot"}},
	{ID: "double_burger", Name: "Double Burger", Price: 8.99, Tags: []string{"burger", "beef", "main", "hot"}},
	{ID: "veggie_burger", Name: "Veggie Burger", Price: 6.49, Tags: []string{"burger", "veg", "main"}},
	{ID: "spicy_chicken_burger", Name: "Spicy Chicken Burger", Price: 7.99, Tags: []string{"burger", "chicken", "spicy", "main"}},

	// Sides
	{ID: "fries_small", Name: "Small Fries", Price: 2.49, Tags: []string{"side"}},
	{ID: "fries_large", Name: "Large Fries", Price: 3.49, Tags: []string{"side"}},
	{ID: "curly_fries", Name: "Curly Fries", Price: 3.99, Tags: []string{"side"}},
	{ID: "onion_rings", Name: "Onion Rings", Price: 3.99, Tags: []string{"side"}},
	{ID: "side_salad", Name: "Side Salad", Price: 3.49, Tags: []string{"veg", "healthy", "side", "light"}},

	// Drinks
	{ID: "cola_small", Name: "Cola (Small)", Price: 1.49, Tags: []string{"drink"}},
	{ID: "cola_large", Name: "Cola (Large)", Price: 2.49, Tags: []string{"drink"}},
	{ID: "orange_soda", Name: "Orange Soda", Price: 2.49, Tags: []string{"drink"}},
	{ID: "lemonade", Name: "Fresh Lemonade", Price: 2.99, Tags: []string{"drink"}},
	{ID: "iced_tea", Name: "Iced Tea", Price: 2.49, Tags: []string{"drink", "healthy"}},
	{ID: "coffee", Name: "Coffee", Price: 1.99, Tags: []string{"drink", "hot"}},
	{ID: "milkshake_chocolate", Name: "Chocolate Milkshake", Price: 3.99, Tags: []string{"drink", "dessert"}},
	{ID: "milkshake_strawberry", Name: "Strawberry Milkshake", Price: 3.99, Tags: []string{"drink", "dessert"}},

	// Chicken
	{ID: "chicken_nuggets_6", Name: "Chicken Nuggets (6 pc)", Price: 4.99, Tags: []string{"chicken"}},
	{ID: "chicken_nuggets_12", Name: "Chicken Nuggets (12 pc)", Price: 7.99, Tags: []string{"chicken"}},
	{ID: "crispy_chicken_strips", Name: "Crispy Chicken Strips", Price: 6.99, Tags: []string{"chicken"}},

	// Healthy
	{ID: "greek_salad", Name: "Greek Salad", Price: 6.49, Tags: []string{"veg", "healthy", "light"}},
	{ID: "chicken_salad", Name: "Chicken Salad", Price: 7.49, Tags: []string{"healthy", "chicken", "light"}},
	{ID: "veggie_wrap", Name: "Veggie Wrap", Price: 5.99, Tags: []string{"veg", "healthy"}},
	{ID: "chicken_wrap", Name: "Chicken Wrap", Price: 6.99, Tags: []string{"healthy", "chicken"}},

	// Kids
	{ID: "kids_burger", Name: "Kids Burger Meal", Price: 4.99, Tags: []string{"kids"}},
	{ID: "kids_nuggets", Name: "Kids Nuggets Meal", Price: 4.99, Tags: []string{"kids"}},
	{ID: "apple_slices", Name: "Apple Slices", Price: 1.29, Tags: []string{"kids", "healthy"}},
	{ID: "juice_box", Name: "Juice Box", Price: 1.29, Tags: []string{"kids", "drink"}},

	// Desserts
	{ID: "ice_cream", Name: "Soft Serve Ice Cream", Price: 1.99, Tags: []string{"dessert"}},
	{ID: "brownie", Name: "Chocolate Brownie", Price: 2.99, Tags: []string{"dessert"}},
}
