package packing

import (
	"github.com/packwise/packwise/internal/trip"
	"github.com/packwise/packwise/internal/weather"
)

// Rule contributes items for one concern. Rules only add; they never see or
// change what earlier rules produced.
type Rule func(p trip.Parameters, w *weather.Snapshot) List

// Weather thresholds in Celsius.
const (
	ColdBelowC = 15.0
	WarmAboveC = 25.0
)

// DefaultRules is the generation pipeline, in application order.
var DefaultRules = []Rule{
	EssentialsRule,
	ClothingRule,
	GenderRule,
	WeatherRule,
	PurposeRule,
	ToiletriesRule,
	AccommodationRule,
	ElectronicsRule,
	DocumentsRule,
}

// Generate builds a packing list by folding DefaultRules. It is deterministic
// and never fails; unknown tags contribute nothing. w may be nil.
func Generate(p trip.Parameters, w *weather.Snapshot) List {
	return Apply(DefaultRules, p, w)
}

// Apply folds rules into a fresh list.
func Apply(rules []Rule, p trip.Parameters, w *weather.Snapshot) List {
	if p.DurationDays < 1 {
		p.DurationDays = 1
	}

	list := NewList()
	for _, rule := range rules {
		list.Merge(rule(p, w))
	}
	return list
}

// ceilDiv returns ceil(n/d) for positive n and d.
func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

// EssentialsRule seeds the universal essentials.
func EssentialsRule(_ trip.Parameters, _ *weather.Snapshot) List {
	const purpose = "Essential item"
	return List{CategoryEssentials: {
		item("Wallet", 1, purpose),
		item("Phone", 1, purpose),
		item("Phone charger", 1, purpose),
		item("Medications", 1, purpose),
		item("Travel insurance info", 1, purpose),
	}}
}

// ClothingRule derives basic clothing quantities from trip length.
func ClothingRule(p trip.Parameters, _ *weather.Snapshot) List {
	const purpose = "Basic clothing"
	d := p.DurationDays
	return List{CategoryClothing: {
		item("T-shirts/tops", ceilDiv(d, 2)+1, purpose),
		item("Pants/shorts/skirts", ceilDiv(d, 3)+1, purpose),
		item("Underwear", d+1, purpose),
		item("Socks", d+1, purpose),
		item("Sleepwear", 1, purpose),
	}}
}

// GenderRule adds gender-specific clothing and toiletries. Neutral adds nothing.
func GenderRule(p trip.Parameters, _ *weather.Snapshot) List {
	const care = "Personal care"
	d := p.DurationDays

	switch p.Gender {
	case trip.GenderFemale:
		return List{
			CategoryClothing: {
				item("Bras", ceilDiv(d, 2)+1, "Basic clothing"),
				item("Sports bras", ceilDiv(d, 4)+1, "For activities"),
			},
			CategoryToiletries: {
				item("Feminine hygiene products", 1, care),
				item("Makeup", 1, care),
				liquid("Makeup remover", 1, care, "100ml"),
			},
		}
	case trip.GenderMale:
		return List{CategoryToiletries: {
			liquid("Razor/shaving cream", 1, care, "100ml"),
			liquid("Aftershave", 1, care, "100ml"),
		}}
	default:
		return nil
	}
}

// WeatherRule adds clothing for cold, warm and rainy conditions. The three
// checks are independent. Nothing is added without a snapshot.
func WeatherRule(_ trip.Parameters, w *weather.Snapshot) List {
	if w == nil {
		return nil
	}

	var clothing []Item
	if w.TemperatureC < ColdBelowC {
		clothing = append(clothing,
			item("Sweater/hoodie", 2, "For cold weather"),
			item("Jacket", 1, "For cold weather"),
		)
	}
	if w.TemperatureC > WarmAboveC {
		clothing = append(clothing,
			item("Shorts", 2, "For warm weather"),
			item("Sunglasses", 1, "For sunny days"),
			item("Hat/cap", 1, "Sun protection"),
		)
	}
	if w.IsRainy() {
		clothing = append(clothing,
			item("Rain jacket/umbrella", 1, "For rainy weather"),
			item("Waterproof shoes", 1, "For rainy weather"),
		)
	}

	return List{CategoryClothing: clothing}
}

// PurposeRule appends one bundle per purpose, in input order. Duplicate
// purposes yield duplicate bundles; callers dedupe if they need to.
func PurposeRule(p trip.Parameters, _ *weather.Snapshot) List {
	out := List{}
	for _, purpose := range p.Purposes {
		out.Merge(purposeBundle(purpose, p))
	}
	return out
}

func purposeBundle(purpose trip.Purpose, p trip.Parameters) List {
	switch purpose {
	case trip.PurposeBeach:
		const beach = "For beach activities"
		return List{CategoryActivities: {
			item("Swimwear", 2, beach),
			item("Beach towel", 1, beach),
			item("Flip flops", 1, beach),
			liquid("Sunscreen", 1, "Sun protection", "200ml"),
		}}
	case trip.PurposeBusiness:
		const meetings = "For business meetings"
		return List{
			CategoryClothing: {
				item("Formal shirts", ceilDiv(p.DurationDays, 2), meetings),
				item("Formal pants/skirts", 2, meetings),
				item("Business shoes", 1, meetings),
				item("Ties/accessories", 2, meetings),
			},
			CategoryActivities: {
				item("Business cards", 1, "For networking"),
				item("Notebook/planner", 1, meetings),
			},
		}
	case trip.PurposeOutdoor:
		const outdoor = "For outdoor activities"
		return List{CategoryActivities: {
			item("Hiking boots", 1, outdoor),
			item("Quick-dry shirts", 3, outdoor),
			item("Hiking pants", 2, outdoor),
			item("Daypack", 1, "For day trips"),
			item("Water bottle", 1, "For hydration"),
			item("First aid kit", 1, "For emergencies"),
		}}
	case trip.PurposeCity:
		return List{CategoryActivities: {
			item("Comfortable walking shoes", 1, "For city exploration"),
			item("Day bag/backpack", 1, "For carrying essentials"),
			item("City map/guidebook", 1, "For navigation"),
			item("Camera", 1, "For sightseeing"),
		}}
	case trip.PurposeOther:
		if p.OtherPurpose == "" {
			return nil
		}
		return List{CategoryActivities: {
			item("Items for "+p.OtherPurpose, 1, "For "+p.OtherPurpose),
		}}
	default:
		return nil
	}
}

// ToiletriesRule appends the basic hygiene bundle. It runs after GenderRule so
// gender-specific toiletries come first.
func ToiletriesRule(_ trip.Parameters, _ *weather.Snapshot) List {
	const purpose = "Basic hygiene"
	return List{CategoryToiletries: {
		item("Toothbrush", 1, purpose),
		liquid("Toothpaste", 1, purpose, "75ml"),
		liquid("Deodorant", 1, purpose, "50ml"),
		liquid("Shampoo", 1, purpose, "100ml"),
		liquid("Conditioner", 1, purpose, "100ml"),
		liquid("Body wash", 1, purpose, "100ml"),
		item("Hairbrush/comb", 1, purpose),
		liquid("Face wash", 1, purpose, "50ml"),
		liquid("Moisturizer", 1, purpose, "50ml"),
	}}
}

// AccommodationRule adds sleep and camping gear per accommodation.
func AccommodationRule(p trip.Parameters, _ *weather.Snapshot) List {
	var essentials []Item
	for _, acc := range p.Accommodations {
		if acc == trip.AccommodationHostel || acc == trip.AccommodationCamping {
			purpose := "For " + string(acc)
			essentials = append(essentials,
				item("Travel towel", 1, purpose),
				item("Earplugs", 1, purpose),
				item("Eye mask", 1, purpose),
			)
		}
		if acc == trip.AccommodationCamping {
			essentials = append(essentials,
				item("Sleeping bag", 1, "For camping"),
				item("Flashlight", 1, "For camping"),
				item("Multi-tool", 1, "For camping"),
			)
		}
	}
	return List{CategoryEssentials: essentials}
}

// ElectronicsRule appends the fixed electronics bundle.
func ElectronicsRule(_ trip.Parameters, _ *weather.Snapshot) List {
	return List{CategoryElectronics: {
		item("Camera", 1, "For photos"),
		item("Power adapter", 1, "For charging devices"),
		item("Portable charger", 1, "For charging on the go"),
	}}
}

// DocumentsRule appends the fixed travel documents bundle.
func DocumentsRule(_ trip.Parameters, _ *weather.Snapshot) List {
	return List{CategoryDocuments: {
		item("Passport/ID", 1, "Required for travel"),
		item("Flight tickets", 1, "Required for travel"),
		item("Hotel reservation", 1, "Required for check-in"),
		item("Cash/credit cards", 1, "For purchases"),
	}}
}
