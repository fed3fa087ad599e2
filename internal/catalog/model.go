package catalog

// Level classification values.
const (
	LevelTHPT   = "thpt"
	LevelDaiHoc = "daihoc"
)

// Category classification values.
const (
	CategoryLyThuyet    = "ly-thuyet"
	CategoryDeThi       = "de-thi"
	CategoryBaiTap      = "bai-tap"
	CategoryGiaiChiTiet = "giai-chi-tiet"
)

// Levels lists the valid level values in display order.
func Levels() []string {
	return []string{LevelTHPT, LevelDaiHoc}
}

// Categories lists the valid category values in display order.
func Categories() []string {
	return []string{CategoryLyThuyet, CategoryDeThi, CategoryBaiTap, CategoryGiaiChiTiet}
}

// ValidLevel reports whether level is a known classification value.
func ValidLevel(level string) bool {
	return level == LevelTHPT || level == LevelDaiHoc
}

// ValidCategory reports whether category is a known classification value.
func ValidCategory(category string) bool {
	switch category {
	case CategoryLyThuyet, CategoryDeThi, CategoryBaiTap, CategoryGiaiChiTiet:
		return true
	}
	return false
}

// Document is one catalog entry. Records are created by the admin tool and
// never updated in place, except fileSize which the metadata-refresh pass
// rewrites.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subject     string   `json:"subject"`
	Level       string   `json:"level"`
	Category    string   `json:"category"`
	Slug        string   `json:"slug"`
	DriveID     string   `json:"driveId"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	FileSize    string   `json:"fileSize"`
	Pages       int      `json:"pages"`
	UploadDate  string   `json:"uploadDate"` // day/month/year, vi-VN style
	Author      string   `json:"author"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
}

// Metadata describes the catalog as a whole.
type Metadata struct {
	TotalDocuments int    `json:"totalDocuments"`
	LastUpdated    string `json:"lastUpdated"`
}

// Catalog is the on-disk shape of documents.json.
type Catalog struct {
	Documents []Document `json:"documents"`
	Metadata  Metadata   `json:"metadata"`
}
