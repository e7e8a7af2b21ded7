package outfit

import (
	"github.com/packwise/packwise/internal/trip"
	"github.com/packwise/packwise/internal/weather"
)

// Temperature thresholds in Celsius.
const (
	HotAboveC  = 25.0
	ColdBelowC = 15.0
)

// template is one cell of an outfit table. The hot variants replace top and
// bottom when the day is warmer than HotAboveC.
type template struct {
	top         string
	hotTop      string
	bottom      string
	hotBottom   string
	shoes       string
	accessories []string
}

// outerwearRule picks outerwear for the day's weather, or "" for none.
type outerwearRule func(w *weather.Snapshot) string

type table struct {
	byGender  map[trip.Gender]template
	outerwear outerwearRule
}

func isCold(w *weather.Snapshot) bool {
	return w != nil && w.TemperatureC < ColdBelowC
}

func isHot(w *weather.Snapshot) bool {
	return w != nil && w.TemperatureC > HotAboveC
}

func rainOrCold(rain, cold string) outerwearRule {
	return func(w *weather.Snapshot) string {
		switch {
		case w.IsRainy():
			return rain
		case isCold(w):
			return cold
		default:
			return ""
		}
	}
}

func coldOnly(cold string) outerwearRule {
	return func(w *weather.Snapshot) string {
		if isCold(w) {
			return cold
		}
		return ""
	}
}

func noOuterwear(*weather.Snapshot) string { return "" }

var daytimeTables = map[Category]table{
	CategoryBeach: {
		byGender: map[trip.Gender]template{
			trip.GenderFemale: {
				top:         "T-shirt",
				hotTop:      "Light tank top or t-shirt",
				bottom:      "Swimsuit with shorts/skirt/cover-up",
				shoes:       "Sandals or flip-flops",
				accessories: []string{"Sunglasses", "Sun hat", "Beach bag", "Sunscreen", "Hair tie"},
			},
			trip.GenderMale: {
				top:         "T-shirt",
				hotTop:      "Light t-shirt or tank top",
				bottom:      "Swim shorts",
				shoes:       "Sandals or flip-flops",
				accessories: []string{"Sunglasses", "Sun hat", "Beach bag", "Sunscreen"},
			},
			trip.GenderNeutral: {
				top:         "T-shirt",
				hotTop:      "Light t-shirt or tank top",
				bottom:      "Swimwear with shorts/cover-up",
				shoes:       "Sandals or flip-flops",
				accessories: []string{"Sunglasses", "Sun hat", "Beach bag", "Sunscreen"},
			},
		},
		outerwear: noOuterwear,
	},
	CategoryBusiness: {
		byGender: map[trip.Gender]template{
			trip.GenderFemale: {
				top:         "Blouse or business shirt",
				bottom:      "Skirt, dress, or formal pants",
				shoes:       "Formal shoes or heels",
				accessories: []string{"Watch", "Professional bag/briefcase", "Minimal jewelry"},
			},
			trip.GenderMale: {
				top:         "Business shirt",
				bottom:      "Formal pants",
				shoes:       "Formal shoes",
				accessories: []string{"Watch", "Professional bag/briefcase", "Tie"},
			},
			trip.GenderNeutral: {
				top:         "Business shirt or blouse",
				bottom:      "Formal pants or skirt",
				shoes:       "Formal shoes",
				accessories: []string{"Watch", "Professional bag/briefcase"},
			},
		},
		outerwear: coldOnly("Blazer or suit jacket"),
	},
	CategoryOutdoor: {
		byGender: map[trip.Gender]template{
			trip.GenderFemale: {
				top:         "Quick-dry shirt or hiking top",
				bottom:      "Hiking pants or shorts",
				shoes:       "Hiking boots or trail shoes",
				accessories: []string{"Hat", "Sunglasses", "Daypack", "Water bottle", "Hair tie/bandana"},
			},
			trip.GenderMale: {
				top:         "Quick-dry shirt or hiking top",
				bottom:      "Hiking pants or shorts",
				shoes:       "Hiking boots or trail shoes",
				accessories: []string{"Hat", "Sunglasses", "Daypack", "Water bottle"},
			},
			trip.GenderNeutral: {
				top:         "Quick-dry shirt or hiking top",
				bottom:      "Hiking pants or shorts",
				shoes:       "Hiking boots or trail shoes",
				accessories: []string{"Hat", "Sunglasses", "Daypack", "Water bottle"},
			},
		},
		outerwear: rainOrCold("Waterproof jacket", "Light jacket or fleece"),
	},
	CategoryCasual: {
		byGender: map[trip.Gender]template{
			trip.GenderFemale: {
				top:         "T-shirt",
				hotTop:      "Light t-shirt or tank top",
				bottom:      "Jeans or pants",
				hotBottom:   "Shorts or skirt",
				shoes:       "Comfortable walking shoes",
				accessories: []string{"Sunglasses", "Small bag"},
			},
			trip.GenderMale: {
				top:         "T-shirt",
				hotTop:      "Light t-shirt",
				bottom:      "Jeans or pants",
				hotBottom:   "Shorts",
				shoes:       "Comfortable walking shoes",
				accessories: []string{"Sunglasses", "Small bag"},
			},
			trip.GenderNeutral: {
				top:         "T-shirt",
				hotTop:      "Light t-shirt",
				bottom:      "Jeans or pants",
				hotBottom:   "Shorts",
				shoes:       "Comfortable walking shoes",
				accessories: []string{"Sunglasses", "Small bag"},
			},
		},
		outerwear: rainOrCold("Rain jacket or umbrella", "Light jacket or sweater"),
	},
}

var eveningTable = table{
	byGender: map[trip.Gender]template{
		trip.GenderFemale: {
			top:         "Nice blouse or dressy top",
			bottom:      "Dress pants or skirt",
			shoes:       "Dress shoes or heels",
			accessories: []string{"Evening bag", "Jewelry"},
		},
		trip.GenderMale: {
			top:         "Dress shirt",
			bottom:      "Dress pants",
			shoes:       "Dress shoes",
			accessories: []string{"Watch"},
		},
		trip.GenderNeutral: {
			top:         "Dress shirt or blouse",
			bottom:      "Dress pants or skirt",
			shoes:       "Dress shoes",
			accessories: []string{"Watch", "Evening bag"},
		},
	},
	outerwear: rainOrCold("Rain jacket or umbrella", "Light jacket or sweater"),
}

func (t table) build(g trip.Gender, w *weather.Snapshot) Outfit {
	tpl, ok := t.byGender[g]
	if !ok {
		tpl = t.byGender[trip.GenderNeutral]
	}

	o := Outfit{
		Top:         tpl.top,
		Bottom:      tpl.bottom,
		Shoes:       tpl.shoes,
		Outerwear:   t.outerwear(w),
		Accessories: append([]string(nil), tpl.accessories...),
	}
	if isHot(w) {
		if tpl.hotTop != "" {
			o.Top = tpl.hotTop
		}
		if tpl.hotBottom != "" {
			o.Bottom = tpl.hotBottom
		}
	}
	return o
}

// Daytime builds the daytime outfit for a category.
func Daytime(c Category, g trip.Gender, w *weather.Snapshot) Outfit {
	t, ok := daytimeTables[c]
	if !ok {
		t = daytimeTables[CategoryCasual]
	}
	return t.build(g, w)
}

// Evening builds the evening outfit. It does not depend on the day's activities.
func Evening(g trip.Gender, w *weather.Snapshot) Outfit {
	return eveningTable.build(g, w)
}
