package models

const (
	ProductCollection = "product"
)

// Product is an OpenFoodFacts record, trimmed to the fields we render and
// aggregate. Everything else the API returns is discarded at ingestion.
type Product struct {
	Code            string      `json:"code"`
	ProductName     *string     `json:"product_name,omitempty"`
	NutritionGrades *string     `json:"nutrition_grades,omitempty"`
	Nutriments      *Nutriments `json:"nutriments,omitempty"`
}

func (p Product) Collection() string { return ProductCollection }
func (p Product) Key() string        { return p.Code }

// Name returns the display name, or the empty string for nameless products
// (which are excluded from display and the search index).
func (p Product) Name() string {
	if p.ProductName == nil {
		return ""
	}
	return *p.ProductName
}

// Nutriments holds the raw per-100g values as the API sends them. Each field
// may be absent, and may arrive as a number or a numeric string; FlexFloat
// absorbs both. The API has also used "energy-kcal_100g" and
// "energy_kcal_100g" interchangeably.
type Nutriments struct {
	Carbohydrates100g *FlexFloat `json:"carbohydrates_100g,omitempty"`
	Sugars100g        *FlexFloat `json:"sugars_100g,omitempty"`
	Proteins100g      *FlexFloat `json:"proteins_100g,omitempty"`
	Fat100g           *FlexFloat `json:"fat_100g,omitempty"`
	EnergyKcal100g    *FlexFloat `json:"energy-kcal_100g,omitempty"`
	EnergyKcalAlt100g *FlexFloat `json:"energy_kcal_100g,omitempty"`
	Fiber100g         *FlexFloat `json:"fiber_100g,omitempty"`
	Salt100g          *FlexFloat `json:"salt_100g,omitempty"`
	Sodium100g        *FlexFloat `json:"sodium_100g,omitempty"`
}

// NutrientValues normalizes the raw record into the canonical per-100g form.
// Absent fields resolve to zero. Salt is derived from sodium (x2.5) when the
// upstream record does not carry it.
func (p Product) NutrientValues() NutrientValues {
	n := p.Nutriments
	if n == nil {
		return NutrientValues{}
	}
	energy := n.EnergyKcal100g.Float()
	if energy == 0 {
		energy = n.EnergyKcalAlt100g.Float()
	}
	salt := n.Salt100g.Float()
	if salt == 0 {
		salt = n.Sodium100g.Float() * 2.5
	}
	return NutrientValues{
		Carbohydrates: n.Carbohydrates100g.Float(),
		Proteins:      n.Proteins100g.Float(),
		Fats:          n.Fat100g.Float(),
		Energy:        energy,
		Fiber:         n.Fiber100g.Float(),
		Salt:          salt,
		Sodium:        n.Sodium100g.Float(),
		Sugar:         n.Sugars100g.Float(),
	}
}
