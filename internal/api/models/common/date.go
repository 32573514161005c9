package common

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the layout Dates are rendered with
const DateLayout = "2006-01-02"

// Date serialises as a plain calendar date, but also accepts RFC3339 timestamps
type Date time.Time

// ParseDate parses either a YYYY-MM-DD date (as UTC midnight) or an RFC3339 timestamp
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date [%v], expected YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, time.Time(d).Format(DateLayout))), nil
}
