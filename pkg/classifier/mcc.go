package classifier

// mccRange maps a merchant category code interval to a category name.
// Ranges are non-overlapping by construction; the first match wins.
type mccRange struct {
	from     int
	to       int
	category string
}

var mccTable = []mccRange{
	{3000, 3441, "travel"},
	{4011, 4119, "transport"},
	{4121, 4121, "taxi"},
	{4131, 4131, "transport"},
	{4411, 4789, "transport"},
	{4812, 4821, "communication"},
	{4899, 4900, "utilities"},
	{5200, 5399, "shopping"},
	{5411, 5499, "groceries"},
	{5541, 5542, "fuel"},
	{5651, 5699, "clothes"},
	{5732, 5735, "electronics"},
	{5812, 5814, "restaurants"},
	{5912, 5912, "pharmacy"},
	{5941, 5949, "hobbies"},
	{6010, 6012, "cash"},
	{6300, 6300, "insurance"},
	{7011, 7011, "hotels"},
	{7230, 7299, "services"},
	{7832, 7999, "entertainment"},
	{8011, 8099, "health"},
	{8211, 8299, "education"},
}

func mccCategoryName(mcc int) (string, bool) {
	for _, r := range mccTable {
		if mcc >= r.from && mcc <= r.to {
			return r.category, true
		}
	}

	return "", false
}
