package domain

// Meal is one row of the meals table. Column names follow the existing
// MySQL schema, including the upper-case ID and camel-cased flags.
type Meal struct {
	ID           int    `gorm:"column:ID;primaryKey;index"`
	Name         string `gorm:"column:name;type:varchar(225);not null"`
	Ingredients  string `gorm:"column:ingredients;type:varchar(1000);not null"`
	NutriInfo    string `gorm:"column:nutri_info;type:varchar(1000);not null"`
	NutriAmounts string `gorm:"column:nutri_amounts;type:varchar(45);not null"`
	Description  string `gorm:"column:description;type:varchar(1000);not null"`
	ImageURL     string `gorm:"column:image_url;type:varchar(225);not null"`
	MealType     string `gorm:"column:mealtype;type:varchar(5);not null"`
	MealPeriod   string `gorm:"column:mealPeriod;type:varchar(45);not null"`
	TimeRange    string `gorm:"column:time_range;type:varchar(45);not null"`
	AllergenInfo string `gorm:"column:allergen_info;type:text;not null"`
	Tags         string `gorm:"column:tags;type:text;not null"`
	IsAvailable  bool   `gorm:"column:isAvailable;not null"`
	IsSeasonal   bool   `gorm:"column:isSeasonal;not null"`
}

// TableName returns the database table name for Meal.
func (Meal) TableName() string {
	return "meals"
}

// MealOut is the JSON shape of a meal returned to clients. It is decoupled
// from the storage column names: the primary key is exposed as "id".
// Every key is always emitted.
type MealOut struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	NutriInfo    string `json:"nutri_info"`
	NutriAmounts string `json:"nutri_amounts"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	MealType     string `json:"mealtype"`
	MealPeriod   string `json:"mealPeriod"`
	TimeRange    string `json:"time_range"`
	AllergenInfo string `json:"allergen_info"`
	Tags         string `json:"tags"`
	IsAvailable  bool   `json:"isAvailable"`
	IsSeasonal   bool   `json:"isSeasonal"`
}

// NewMealOut copies every attribute of m into a fresh MealOut.
func NewMealOut(m Meal) MealOut {
	return MealOut{
		ID:           m.ID,
		Name:         m.Name,
		Ingredients:  m.Ingredients,
		NutriInfo:    m.NutriInfo,
		NutriAmounts: m.NutriAmounts,
		Description:  m.Description,
		ImageURL:     m.ImageURL,
		MealType:     m.MealType,
		MealPeriod:   m.MealPeriod,
		TimeRange:    m.TimeRange,
		AllergenInfo: m.AllergenInfo,
		Tags:         m.Tags,
		IsAvailable:  m.IsAvailable,
		IsSeasonal:   m.IsSeasonal,
	}
}

// NewMealOuts maps rows in order. The result is never nil, so an empty
// table encodes as [] rather than null.
func NewMealOuts(meals []Meal) []MealOut {
	out := make([]MealOut, 0, len(meals))
	for _, m := range meals {
		out = append(out, NewMealOut(m))
	}
	return out
}

// Entity converts a transfer object back into a storable row. Used by the
// seed loader, whose documents use the client-facing keys.
func (o MealOut) Entity() Meal {
	return Meal{
		ID:           o.ID,
		Name:         o.Name,
		Ingredients:  o.Ingredients,
		NutriInfo:    o.NutriInfo,
		NutriAmounts: o.NutriAmounts,
		Description:  o.Description,
		ImageURL:     o.ImageURL,
		MealType:     o.MealType,
		MealPeriod:   o.MealPeriod,
		TimeRange:    o.TimeRange,
		AllergenInfo: o.AllergenInfo,
		Tags:         o.Tags,
		IsAvailable:  o.IsAvailable,
		IsSeasonal:   o.IsSeasonal,
	}
}
