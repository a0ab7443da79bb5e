package main

import "testing"

func TestCheckHoliday(t *testing.T) {
	tests := []struct {
		name    string
		h       Holiday
		wantErr string
	}{
		{"weekday", Holiday{DateRule: "July 1", Date: "2022-07-01", ObservedDate: "2022-07-01"}, ""},
		{"shifted to monday", Holiday{DateRule: "July 1", Date: "2023-07-01", ObservedDate: "2023-07-03"}, ""},
		{"wrong year", Holiday{DateRule: "July 1", Date: "2021-07-01", ObservedDate: "2021-07-01"}, "resolved into another year"},
		{"summer solstice on a saturday", Holiday{DateRule: "June 21", Date: "2022-06-21", ObservedDate: "2022-06-21"}, ""},
		{"weekend", Holiday{DateRule: "July 1", Date: "2022-07-02", ObservedDate: "2022-07-02"}, "observed on a Saturday"},
		{"near monday before literal", Holiday{DateRule: "Monday near July 12", Date: "2022-07-12", ObservedDate: "2022-07-11"}, ""},
		{"too far", Holiday{DateRule: "July 1", Date: "2022-07-01", ObservedDate: "2022-07-11"}, "observed too far from literal date"},
		{"bad date", Holiday{DateRule: "July 1", Date: "July 1", ObservedDate: "2022-07-01"}, "bad literal date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkHoliday(2022, tt.h)
			if got.Success != (tt.wantErr == "") || got.Error != tt.wantErr {
				t.Errorf("checkHoliday() = %v %q, want error %q", got.Success, got.Error, tt.wantErr)
			}
		})
	}
}
