// Package rates holds the static reference tables: labor tariffs,
// equipment hourly costs, and the contract line-item list. Pure data with
// absent-safe lookups; a missed lookup is not an error, callers leave
// prior values untouched.
package rates

// LaborRate is the tariff entry for one personnel role.
type LaborRate struct {
	HourlyRate        float64 `json:"hourlyRate"`
	MinimumDailyHours float64 `json:"minimumDailyHours"`
}

// ContractLineItem is one budgeted line of the contract. The list is
// immutable reference data.
type ContractLineItem struct {
	Code           string  `json:"code"`
	Description    string  `json:"description"`
	Unit           string  `json:"unit"`
	BudgetedAmount float64 `json:"budgetedAmount"`
}

var laborRates = map[string]LaborRate{
	"Operador Excavadora":      {HourlyRate: 18.50, MinimumDailyHours: 4},
	"Operador Retroexcavadora": {HourlyRate: 17.25, MinimumDailyHours: 4},
	"Ayudante General":         {HourlyRate: 8.50, MinimumDailyHours: 8},
	"Albañil":                  {HourlyRate: 12.75, MinimumDailyHours: 8},
	"Capataz":                  {HourlyRate: 22.00, MinimumDailyHours: 8},
	"Jefe de Obra":             {HourlyRate: 35.00, MinimumDailyHours: 8},
	"Topógrafo":                {HourlyRate: 25.50, MinimumDailyHours: 8},
}

var equipmentRates = map[string]float64{
	"Excavadora CAT 320":      125.00,
	"Retroexcavadora CAT 420": 110.00,
	"Volqueta 10m³":           75.00,
	"Compactador Vibratorio":  85.00,
}

var contractItems = []ContractLineItem{
	{Code: "1.01", Description: "Oficina de campo", Unit: "Glob", BudgetedAmount: 1134.97},
	{Code: "4.01", Description: "Limpieza y desraigue", Unit: "m2", BudgetedAmount: 12953.33},
	{Code: "4.02", Description: "Corte y Disposición", Unit: "m3", BudgetedAmount: 49771.45},
	{Code: "5.01", Description: "Capa Base", Unit: "m²", BudgetedAmount: 35538.72},
	{Code: "6.01", Description: "Tubería PVC 4\"", Unit: "ml", BudgetedAmount: 26867.30},
}

// FieldLaborRoles are the roles offered for field personnel rows.
var FieldLaborRoles = []string{"Operador Excavadora", "Operador Retroexcavadora", "Ayudante General", "Albañil"}

// AdminLaborRoles are the roles offered for administrative personnel rows.
var AdminLaborRoles = []string{"Capataz", "Jefe de Obra", "Topógrafo"}

// LookupLaborRate returns the tariff for a role, reporting whether the
// role is known.
func LookupLaborRate(role string) (LaborRate, bool) {
	r, ok := laborRates[role]
	return r, ok
}

// LookupEquipmentRate returns the hourly cost for an equipment type,
// reporting whether the type is known.
func LookupEquipmentRate(equipmentType string) (float64, bool) {
	rate, ok := equipmentRates[equipmentType]
	return rate, ok
}

// LaborRates returns a copy of the full labor tariff table.
func LaborRates() map[string]LaborRate {
	out := make(map[string]LaborRate, len(laborRates))
	for role, r := range laborRates {
		out[role] = r
	}
	return out
}

// EquipmentRates returns a copy of the full equipment tariff table.
func EquipmentRates() map[string]float64 {
	out := make(map[string]float64, len(equipmentRates))
	for t, rate := range equipmentRates {
		out[t] = rate
	}
	return out
}

// ContractItems returns a copy of the contract line-item list.
func ContractItems() []ContractLineItem {
	return append([]ContractLineItem(nil), contractItems...)
}

// FindContractItem returns the contract line item with the given code,
// reporting whether it exists.
func FindContractItem(code string) (ContractLineItem, bool) {
	for _, item := range contractItems {
		if item.Code == code {
			return item, true
		}
	}
	return ContractLineItem{}, false
}
