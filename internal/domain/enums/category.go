package enums

// Category is a cuisine category shared by requests and stores.
type Category string

const (
	CategoryKorean   Category = "한식"
	CategoryJapanese Category = "일식"
	CategoryWestern  Category = "양식"
)

func AllCategories() []Category {
	return []Category{CategoryKorean, CategoryJapanese, CategoryWestern}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryKorean, CategoryJapanese, CategoryWestern:
		return true
	default:
		return false
	}
}
