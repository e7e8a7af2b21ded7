package packing

import (
	"strings"

	"github.com/packwise/packwise/internal/trip"
)

// Strategy is a packing guide for one kind of luggage.
type Strategy struct {
	LuggageType string            `json:"luggageType"`
	Title       string            `json:"title"`
	Sections    []StrategySection `json:"sections"`
}

// StrategySection is one titled block of tips.
type StrategySection struct {
	Title string   `json:"title"`
	Intro string   `json:"intro,omitempty"`
	Tips  []string `json:"tips"`
}

var backpackSections = []StrategySection{
	{
		Title: "Weight Distribution",
		Intro: "Proper weight distribution is crucial for comfort when carrying a backpack:",
		Tips: []string{
			"Bottom: Heavy items (sleeping bag, extra shoes)",
			"Middle: Medium-weight items (clothes, food)",
			"Top: Light, frequently used items (jacket, map, snacks)",
			"External pockets: Items needed on the go (water bottle, sunscreen)",
		},
	},
	{
		Title: "Space-Saving Techniques",
		Tips: []string{
			"Use compression sacks for clothing and sleeping bags",
			"Roll clothes instead of folding",
			"Use packing cubes to organize and maximize space",
			"Wear your bulkiest items during transit",
		},
	},
	{
		Title: "Accessibility Tips",
		Tips: []string{
			"Pack items you'll need during the day near the top or in external pockets",
			"Keep valuables in internal, hard-to-reach pockets",
			"Use a rain cover to protect your backpack in wet conditions",
		},
	},
}

var strategies = map[string]Strategy{
	trip.LuggageCarryOn: {
		Title: "Packing Strategy for Carry-on Suitcase",
		Sections: []StrategySection{
			{
				Title: "Rolling Method",
				Intro: "Roll clothes instead of folding to save space and reduce wrinkles.",
				Tips: []string{
					"T-shirts, underwear, and socks are ideal for rolling",
					"Place rolled items at the bottom of your suitcase",
				},
			},
			{
				Title: "Layer Strategy (Bottom to Top)",
				Tips: []string{
					"Bottom layer: Heavy items like shoes (in shoe bags), jeans, and bulky items",
					"Middle layer: Rolled clothes and medium-weight items",
					"Top layer: Light items like shirts and items you'll need first",
				},
			},
			{
				Title: "Liquids and Toiletries",
				Intro: "Remember the 3-1-1 rule for carry-ons:",
				Tips: []string{
					"3.4 ounces (100ml) or less per container",
					"1 quart-sized, clear, plastic, zip-top bag",
					"1 bag per passenger",
				},
			},
		},
	},
	trip.LuggageChecked: {
		Title: "Packing Strategy for Checked Suitcase",
		Sections: []StrategySection{
			{
				Title: "Weight Distribution",
				Intro: "Place heavier items at the bottom (wheel end) of the suitcase for better balance.",
			},
			{
				Title: "Layer Strategy",
				Tips: []string{
					"Bottom layer: Heavy items like shoes, toiletry bags, and bulky clothing",
					"Middle layer: Folded clothes using the bundle method to reduce wrinkles",
					"Top layer: Light items and things you'll need immediately upon arrival",
				},
			},
			{
				Title: "Utilize All Space",
				Tips: []string{
					"Fill shoes with socks or small items",
					"Use packing cubes to organize and compress clothing",
					"Use the outer pockets for items you may need to access during travel",
				},
			},
		},
	},
	trip.LuggageBackpackSmall:  {Title: "Packing Strategy for Small Backpack", Sections: backpackSections},
	trip.LuggageBackpackMedium: {Title: "Packing Strategy for Medium Backpack", Sections: backpackSections},
	trip.LuggageBackpackLarge:  {Title: "Packing Strategy for Large Backpack", Sections: backpackSections},
	trip.LuggageDuffel: {
		Title: "Packing Strategy for Duffel Bag",
		Sections: []StrategySection{
			{
				Title: "Organization Strategy",
				Intro: "Duffel bags lack structure, so organization is key:",
				Tips: []string{
					"Use packing cubes to create structure and organization",
					"Color-code packing cubes by category (clothes, toiletries, electronics)",
					"Place shoes at the ends of the bag, wrapped in shoe bags",
				},
			},
			{
				Title: "Layering Approach",
				Tips: []string{
					"Bottom: Heavy items and items not needed immediately",
					"Middle: Clothing and medium-weight items",
					"Top: Items needed first upon arrival",
				},
			},
			{
				Title: "Accessibility Tips",
				Tips: []string{
					"Use external or end pockets for frequently accessed items",
					"Keep a small pouch with essentials at the top of your bag",
					"Consider using a shoulder strap for easier carrying",
				},
			},
		},
	},
	trip.LuggageOspreyFairview: {
		Title: "Packing Strategy for Osprey Fairview/Farpoint Travel Pack",
		Sections: []StrategySection{
			{
				Title: "Main Compartment (Bottom-to-Top Packing)",
				Tips: []string{
					"Bottom: Less frequently used items (extra clothes, sleeping bag liner)",
					"Middle: Medium-weight essentials (clothes in packing cubes, toiletries)",
					"Top: Frequently used items (jacket, snacks, water bottle)",
				},
			},
			{
				Title: "Daypack (Detachable 15L)",
				Intro: "Pack daily essentials in the detachable daypack:",
				Tips: []string{
					"Passport, cash, cards in secure inner pocket",
					"Electronics (phone, camera, chargers)",
					"Water bottle, snacks",
					"Light rain jacket or sweater",
					"Sunglasses, sunscreen",
				},
			},
			{
				Title: "Compression System",
				Intro: "Use the built-in compression straps to:",
				Tips: []string{
					"Secure and stabilize the load",
					"Reduce the pack's profile for easier handling",
					"Prevent items from shifting during transit",
				},
			},
			{
				Title: "Laptop Sleeve",
				Intro: "The dedicated laptop sleeve can hold:",
				Tips: []string{
					"Laptop (up to 15\")",
					"Tablet",
					"Travel documents in a folder",
					"Books or magazines",
				},
			},
		},
	},
}

var generalSections = []StrategySection{
	{
		Title: "General Packing Principles",
		Tips: []string{
			"Weight distribution: Heavier items at the bottom/back",
			"Accessibility: Frequently used items should be easily accessible",
			"Organization: Use packing cubes or bags to group similar items",
			"Protection: Wrap fragile items in soft clothing",
		},
	},
	{
		Title: "Space-Saving Techniques",
		Tips: []string{
			"Roll clothes instead of folding to save space",
			"Use compression bags for bulky items",
			"Fill empty spaces (like shoes) with small items",
			"Wear your bulkiest items during transit",
		},
	},
	{
		Title: "Packing Order",
		Tips: []string{
			"First layer: Heavy items (shoes, toiletry bags)",
			"Middle layer: Clothing and medium-weight items",
			"Top layer: Light items and things needed first",
		},
	},
}

// StrategyFor returns the packing guide for a luggage type. Unknown types get
// the general guide titled with the type itself. An empty type returns nil.
func StrategyFor(luggageType string) *Strategy {
	luggageType = strings.TrimSpace(luggageType)
	if luggageType == "" {
		return nil
	}

	if s, ok := strategies[luggageType]; ok {
		s.LuggageType = luggageType
		return &s
	}

	return &Strategy{
		LuggageType: luggageType,
		Title:       "Packing Strategy for " + luggageType,
		Sections:    generalSections,
	}
}
