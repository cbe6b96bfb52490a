package models

// FeedingTypes lists the feeding types offered by the profile and log forms.
// Other values are accepted as free text.
var FeedingTypes = []string{"Breast Milk", "Formula", "Puree", "Solid Food"}

// DietaryRestrictions lists the suggested restriction tags.
var DietaryRestrictions = []string{"Dairy", "Gluten", "Eggs", "Nuts", "Soy"}

// AmountUnits lists the units used to compose FeedingLog.Amount ("120 ml").
var AmountUnits = []string{"ml", "oz", "g", "tbsp"}
