package category

// StarterRules returns the built-in category list offered to first-time
// users. The defaults are read-only; per-request overrides are passed
// explicitly and never mutate this table.
func StarterRules() []Rule {
	rules := make([]Rule, len(starterRules))
	for i, r := range starterRules {
		rules[i] = Rule{Name: r.Name, Keywords: append([]string(nil), r.Keywords...)}
	}
	return rules
}

var starterRules = []Rule{
	{
		Name: "Grocery",
		Keywords: []string{
			"indomaret",
			"idm indoma",
			"alfamart",
			"aqshamart",
		},
	},
	{
		Name: "Makan",
		Keywords: []string{
			"warung",
			"warteg",
			"nasi uduk",
			"bubur ayam",
			"bakso",
			"sop ayam",
			"ayam bakar",
			"jos chicke",
			"kopi",
			"es oyen",
			"roti",
			"gehu",
			"sabana",
			"just nona",
			"dapur nuda",
			"kebab",
			"tomoro",
			"warung k",
			"warung mad",
			"aeon store",
		},
	},
	{
		Name: "Shopping",
		Keywords: []string{
			"shopee",
			"tokopedia",
		},
	},
	{
		Name: "Gopay",
		Keywords: []string{
			"gopay",
			"topup",
			"gopay topup",
		},
	},
	{
		Name: "ATM",
		Keywords: []string{
			"tarikan atm",
			"bi-fast",
			"biaya txn",
			"bif transfer",
		},
	},
	{
		Name: "Income",
		Keywords: []string{
			"salary",
			"transfer cr",
		},
	},
	{
		Name:     "Gift",
		Keywords: []string{"masjid"},
	},
	{
		Name:     "Kostan",
		Keywords: []string{"kost"},
	},
}
