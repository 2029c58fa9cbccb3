package onboarding

type Option struct {
	Value string
	Label string
}

var ArrivalPoints = []Option{
	{Value: "CGN", Label: "Cologne/Bonn (CGN)"},
	{Value: "DUS", Label: "Düsseldorf (DUS)"},
	{Value: "KLN_HBF", Label: "Köln Hbf (Train)"},
}

var EquipmentSizes = []string{"S", "M", "L", "XL"}

func ValidSize(size string) bool {
	for _, s := range EquipmentSizes {
		if s == size {
			return true
		}
	}
	return false
}

func ArrivalPointLabel(value string) string {
	for _, p := range ArrivalPoints {
		if p.Value == value {
			return p.Label
		}
	}
	return value
}
