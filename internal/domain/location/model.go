package location

import "context"

type Category string

const (
	CategoryHousing        Category = "housing"
	CategoryTraining       Category = "training"
	CategoryGym            Category = "gym"
	CategoryLanguageSchool Category = "language_school"
	CategoryDining         Category = "dining"
	CategoryPhysio         Category = "physio"
	CategoryTrainStation   Category = "train_station"
	CategoryLeisure        Category = "leisure"
)

// Categories is the display order of the key locations list.
var Categories = []Category{
	CategoryHousing,
	CategoryTraining,
	CategoryGym,
	CategoryLanguageSchool,
	CategoryDining,
	CategoryPhysio,
	CategoryTrainStation,
	CategoryLeisure,
}

var categoryLabels = map[Category]string{
	CategoryHousing:        "Housing",
	CategoryTraining:       "Training Facility",
	CategoryGym:            "Gym",
	CategoryLanguageSchool: "Language School",
	CategoryDining:         "Dining",
	CategoryPhysio:         "Physio",
	CategoryTrainStation:   "Train Station",
	CategoryLeisure:        "Leisure",
}

func (c Category) Label() string {
	return categoryLabels[c]
}

func (c Category) Known() bool {
	_, ok := categoryLabels[c]
	return ok
}

type Location struct {
	ID       string
	Site     string
	Category Category
	Name     string
	Address  string
	MapsURL  string
}

type Repository interface {
	ListBySite(ctx context.Context, site string) ([]Location, error)
}

// Primary keeps the first location of each category in category order.
// Locations with unknown categories are dropped.
func Primary(locations []Location) []Location {
	first := make(map[Category]Location, len(Categories))
	for _, l := range locations {
		if !l.Category.Known() {
			continue
		}
		if _, ok := first[l.Category]; !ok {
			first[l.Category] = l
		}
	}

	out := make([]Location, 0, len(first))
	for _, c := range Categories {
		if l, ok := first[c]; ok {
			out = append(out, l)
		}
	}
	return out
}
