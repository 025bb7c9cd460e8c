package statements

import "fmt"

// lineItem binds a table row to the record field it fills.
type lineItem struct {
	row string
	dst *YearValues
}

// extractLineItems fills every line item from t, failing on the first
// missing row.
func extractLineItems(t *Table, want Kind, items []lineItem) error {
	if t == nil {
		return fmt.Errorf("%s statement: nil table", want)
	}
	if t.Kind != want {
		return fmt.Errorf("%s statement: got %s table", want, t.Kind)
	}
	for _, item := range items {
		values, err := t.Extract(item.row)
		if err != nil {
			return err
		}
		*item.dst = values
	}
	return nil
}
