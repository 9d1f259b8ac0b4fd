package models

import "strconv"

const (
	FoodCollection       = "usda_food"
	FoodSearchCollection = "usda_search"
)

// Food is a USDA FoodData Central search hit.
type Food struct {
	FdcID       int            `json:"fdcId"`
	Description string         `json:"description"`
	Nutrients   []FoodNutrient `json:"foodNutrients"`
}

type FoodNutrient struct {
	ID     int     `json:"nutrientId"`
	Name   string  `json:"nutrientName"`
	Amount float64 `json:"value"`
	Unit   string  `json:"unitName"`
}

func (f Food) Collection() string { return FoodCollection }
func (f Food) Key() string        { return strconv.Itoa(f.FdcID) }

func (f Food) nutrientByName(names ...string) float64 {
	for _, n := range f.Nutrients {
		for _, name := range names {
			if n.Name == name {
				return n.Amount
			}
		}
	}
	return 0
}

// NutrientValues extracts the canonical per-100g record from the USDA nutrient
// list. USDA reports sodium in milligrams, so it is converted to grams, and
// salt is derived from sodium with the standard x2.5 factor.
func (f Food) NutrientValues() NutrientValues {
	sodium := f.nutrientByName("Sodium, Na") * 0.001
	return NutrientValues{
		Carbohydrates: f.nutrientByName("Carbohydrate, by difference"),
		Proteins:      f.nutrientByName("Protein"),
		Fats:          f.nutrientByName("Total lipid (fat)"),
		Energy:        f.nutrientByName("Energy", "Energy (Atwater Specific Factors)"),
		Fiber:         f.nutrientByName("Fiber, total dietary"),
		Salt:          sodium * 2.5,
		Sodium:        sodium,
		Sugar:         f.nutrientByName("Total Sugars"),
	}
}

// ToProduct converts a USDA food into the product shape meals embed, with the
// normalized values frozen into the snapshot.
func (f Food) ToProduct() Product {
	name := f.Description
	v := f.NutrientValues()
	carbs := FlexFloat(v.Carbohydrates)
	sugar := FlexFloat(v.Sugar)
	protein := FlexFloat(v.Proteins)
	fat := FlexFloat(v.Fats)
	energy := FlexFloat(v.Energy)
	fiber := FlexFloat(v.Fiber)
	salt := FlexFloat(v.Salt)
	sodium := FlexFloat(v.Sodium)
	return Product{
		Code:        f.Key(),
		ProductName: &name,
		Nutriments: &Nutriments{
			Carbohydrates100g: &carbs,
			Sugars100g:        &sugar,
			Proteins100g:      &protein,
			Fat100g:           &fat,
			EnergyKcal100g:    &energy,
			Fiber100g:         &fiber,
			Salt100g:          &salt,
			Sodium100g:        &sodium,
		},
	}
}

// FoodSearchResult caches one USDA query. It expires after the retention
// window instead of being invalidated.
type FoodSearchResult struct {
	Query string `json:"query"`
	Foods []Food `json:"foods"`
}

func (r FoodSearchResult) Collection() string { return FoodSearchCollection }
func (r FoodSearchResult) Key() string        { return r.Query }
