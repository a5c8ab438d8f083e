package storage

import "testing"

func TestDestinationKey_Key(t *testing.T) {
	key := DestinationKey{
		Prefix:   "dct-sales/",
		Rep:      "sr1",
		Filename: "sr1_cust_01.csv",
	}

	got := key.Key()
	want := "dct-sales/sr1/sr1_cust_01.csv"

	if got != want {
		t.Fatalf("Key() = %s, want %s", got, want)
	}
}

func TestRepFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "single segment", filename: "sr1_report.csv", want: "sr1"},
		{name: "multiple separators", filename: "sr2_cust_01.csv", want: "sr2"},
		{name: "no separator", filename: "report.csv", wantErr: true},
		{name: "leading separator", filename: "_report.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RepFromFilename(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RepFromFilename(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("RepFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}
