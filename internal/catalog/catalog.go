// Package catalog holds the static product and category reference data
// and the derived product filter. Nothing in here is mutated at runtime.
package catalog

// Product is immutable reference data. Price is in whole rupees.
type Product struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int    `json:"price"`
	OriginalPrice int    `json:"originalPrice,omitempty"`
	Weight        string `json:"weight"`
	Image         string `json:"image"`
	Category      string `json:"category"`
	Brand         string `json:"brand"`
	Discount      string `json:"discount,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var categories = []Category{
	{ID: "all", Name: "All", Icon: "🛍️"},
	{ID: "vegetables", Name: "Vegetables & Fruits", Icon: "🥦"},
	{ID: "dairy", Name: "Dairy, Bread & Eggs", Icon: "🥛"},
	{ID: "snacks", Name: "Snacks & Munchies", Icon: "🥨"},
	{ID: "drinks", Name: "Cold Drinks & Juices", Icon: "🥤"},
	{ID: "instant", Name: "Instant & Frozen Food", Icon: "🍜"},
	{ID: "personal", Name: "Personal Care", Icon: "🧼"},
	{ID: "cleaning", Name: "Cleaning Essentials", Icon: "🧽"},
}

var products = []Product{
	{
		ID:            "1",
		Name:          "Amul Taaza Toned Milk",
		Price:         27,
		OriginalPrice: 28,
		Weight:        "500 ml",
		Image:         "https://images.unsplash.com/photo-1550583724-1255d1426639?w=300&h=300&fit=crop",
		Category:      "dairy",
		Brand:         "Amul",
		Discount:      "4% OFF",
	},
	{
		ID:            "2",
		Name:          "Fresh Organic Tomatoes",
		Price:         45,
		OriginalPrice: 60,
		Weight:        "500 g",
		Image:         "https://images.unsplash.com/photo-1518977676601-b53f02bad67b?w=300&h=300&fit=crop",
		Category:      "vegetables",
		Brand:         "Fresh",
		Discount:      "25% OFF",
	},
	{
		ID:       "3",
		Name:     "Lay's India's Magic Masala",
		Price:    20,
		Weight:   "50 g",
		Image:    "https://images.unsplash.com/photo-1566478431375-7049b1133f4b?w=300&h=300&fit=crop",
		Category: "snacks",
		Brand:    "Lays",
	},
	{
		ID:            "4",
		Name:          "Coca-Cola Zero Sugar",
		Price:         40,
		OriginalPrice: 45,
		Weight:        "300 ml",
		Image:         "https://images.unsplash.com/photo-1554866585-cd94860890b7?w=300&h=300&fit=crop",
		Category:      "drinks",
		Brand:         "Coca-Cola",
		Discount:      "11% OFF",
	},
	{
		ID:       "5",
		Name:     "Maggi 2-Minute Noodles",
		Price:    96,
		Weight:   "420 g",
		Image:    "https://images.unsplash.com/photo-1612929633738-8fe44f7ec841?w=300&h=300&fit=crop",
		Category: "instant",
		Brand:    "Maggi",
	},
}

// Products returns the full product table in display order.
func Products() []Product {
	return products
}

// Categories returns the category table in display order.
func Categories() []Category {
	return categories
}

// Lookup returns the product with the given id, or false when unknown.
func Lookup(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
