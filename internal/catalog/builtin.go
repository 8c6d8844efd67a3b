package catalog

// Stringing returns the racket string catalog. Prices exclude labour, which the
// caller supplies so it stays configurable.
func Stringing(labour int) *Catalog {
	return New(labour, map[string][]Entry{
		"Yonex": {
			{Name: "AEROBITE", BasePrice: 800},
			{Name: "AeroBite Boost", BasePrice: 800},
			{Name: "BG 65", BasePrice: 450},
			{Name: "BG 65 Titanium", BasePrice: 500},
			{Name: "BG 66 Ultimax", BasePrice: 600},
			{Name: "BG 80", BasePrice: 600},
			{Name: "BG 80 Power", BasePrice: 700},
			{Name: "Nanogy 95", BasePrice: 700},
		},
		"Li-Ning": {
			{Name: "No.1", BasePrice: 450},
			{Name: "No.7", BasePrice: 400},
		},
		"Hundred": {
			{Name: "Control", BasePrice: 350},
			{Name: "Power", BasePrice: 300},
			{Name: "Pro", BasePrice: 380},
		},
	})
}

// KnockingBrand groups the bat knocking packages.
const KnockingBrand = "Knocking"

// BatKnocking returns the knocking packages keyed by ball count. Package "100" is the
// one-rupee package used to exercise the live payment flow.
func BatKnocking() *Catalog {
	return New(0, map[string][]Entry{
		KnockingBrand: {
			{Name: "100", Label: "Test package", BasePrice: 1},
			{Name: "10000", Label: "10,000 balls", BasePrice: 800},
			{Name: "15000", Label: "15,000 balls", BasePrice: 1100},
			{Name: "20000", Label: "20,000 balls", BasePrice: 1500},
			{Name: "25000", Label: "25,000 balls", BasePrice: 1800},
			{Name: "30000", Label: "30,000 balls", BasePrice: 2000},
		},
	})
}

// GlovesBrand groups the glove makes accepted for repair.
const GlovesBrand = "Gloves"

// Gloves returns the glove makes. Repairs are priced by the outlet's estimate, so
// every make carries a zero base price.
func Gloves() *Catalog {
	return New(0, map[string][]Entry{
		GlovesBrand: {
			{Name: "SS"},
			{Name: "SG"},
			{Name: "MRF"},
			{Name: "Kookaburra"},
			{Name: "Gray-Nicolls"},
			{Name: "DSC"},
		},
	})
}
