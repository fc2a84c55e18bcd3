package model

// Setting is a loosely-typed key/value pair. Values are strings;
// callers parse them and fall back to defaults on garbage.
type Setting struct {
	ID    uint   `gorm:"primaryKey"`
	Key   string `gorm:"size:50;uniqueIndex"`
	Value string `gorm:"size:200"`
}
