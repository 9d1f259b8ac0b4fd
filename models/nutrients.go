package models

// NutrientValues is the normalized per-100g (or per-serving, once scaled)
// nutrient record. Every field is present; missing upstream data reads as zero.
type NutrientValues struct {
	Carbohydrates float64 `json:"carbohydrates"`
	Proteins      float64 `json:"proteins"`
	Fats          float64 `json:"fats"`
	Energy        float64 `json:"energy"`
	Fiber         float64 `json:"fiber"`
	Salt          float64 `json:"salt"`
	Sodium        float64 `json:"sodium"`
	Sugar         float64 `json:"sugar"`
}

func (n NutrientValues) Add(o NutrientValues) NutrientValues {
	return NutrientValues{
		Carbohydrates: n.Carbohydrates + o.Carbohydrates,
		Proteins:      n.Proteins + o.Proteins,
		Fats:          n.Fats + o.Fats,
		Energy:        n.Energy + o.Energy,
		Fiber:         n.Fiber + o.Fiber,
		Salt:          n.Salt + o.Salt,
		Sodium:        n.Sodium + o.Sodium,
		Sugar:         n.Sugar + o.Sugar,
	}
}

// Scale multiplies every field by factor. Callers pass grams*0.01 to turn a
// per-100g record into an actual serving contribution.
func (n NutrientValues) Scale(factor float64) NutrientValues {
	return NutrientValues{
		Carbohydrates: n.Carbohydrates * factor,
		Proteins:      n.Proteins * factor,
		Fats:          n.Fats * factor,
		Energy:        n.Energy * factor,
		Fiber:         n.Fiber * factor,
		Salt:          n.Salt * factor,
		Sodium:        n.Sodium * factor,
		Sugar:         n.Sugar * factor,
	}
}

// SumNutrients folds a list of values into a single total, starting from zero.
func SumNutrients(values []NutrientValues) NutrientValues {
	var total NutrientValues
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
