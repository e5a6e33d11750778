package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ItemID is either a numeric id (the file stem was all ASCII digits) or the
// stem itself. Numeric ids keep their canonical digits as text so stems
// longer than an int64 still serialize as JSON numbers.
type ItemID struct {
	raw     string
	numeric bool
}

// ParseItemID classifies a file stem.
func ParseItemID(stem string) ItemID {
	if !isDigits(stem) {
		return StringID(stem)
	}
	trimmed := strings.TrimLeft(stem, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return ItemID{raw: trimmed, numeric: true}
}

// NumericID builds a numeric id.
func NumericID(n uint64) ItemID {
	return ItemID{raw: strconv.FormatUint(n, 10), numeric: true}
}

// StringID builds a string id, even if s looks numeric.
func StringID(s string) ItemID {
	return ItemID{raw: s}
}

// IsNumeric reports whether the id serializes as a JSON number.
func (id ItemID) IsNumeric() bool {
	return id.numeric
}

// String returns the id as the front end keys it: numbers without leading
// zeros, strings verbatim.
func (id ItemID) String() string {
	return id.raw
}

// Int returns the numeric value. It fails for string ids and for numbers
// that do not fit in an int64.
func (id ItemID) Int() (int64, error) {
	if !id.numeric {
		return 0, fmt.Errorf("catalog: item id %q is not numeric", id.raw)
	}
	return strconv.ParseInt(id.raw, 10, 64)
}

func (id ItemID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.raw), nil
	}
	return marshalNoEscape(id.raw)
}

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("catalog: item id must be a string or integer: %w", err)
	}
	if !isDigits(n.String()) {
		return fmt.Errorf("catalog: item id %s is not a non-negative integer", n)
	}
	*id = ParseItemID(n.String())
	return nil
}

// Item is one catalog entry. Field order matches the emitted JSON.
type Item struct {
	ItemID      ItemID `json:"itemID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rare        string `json:"Rare"`
	ItemType    string `json:"itemType"`
	Image       string `json:"image"`
	IsUnique    bool   `json:"isUnique"`
}

// NewItem builds the record for <category>/<rarity>/<filename>.
func NewItem(webPrefix, category, rarity, filename, itemType string) Item {
	stem := strings.TrimSuffix(filename, ImageExt)
	return Item{
		ItemID:      ParseItemID(stem),
		Name:        fmt.Sprintf("%s %s", itemType, stem),
		Description: fmt.Sprintf("A %s %s", rarity, itemType),
		Rare:        rarity,
		ItemType:    itemType,
		Image:       fmt.Sprintf("%s/%s/%s/%s", strings.TrimSuffix(webPrefix, "/"), category, rarity, filename),
		IsUnique:    true,
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
