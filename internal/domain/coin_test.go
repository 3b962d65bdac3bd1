package domain

import "testing"

func TestBucket_Boundaries(t *testing.T) {
	cases := []struct {
		name      string
		marketCap float64
		want      CapBucket
	}{
		{"above 10B is large", 10_000_000_001, BucketLarge},
		{"exactly 10B is mid", 10_000_000_000, BucketMid},
		{"above 1B is mid", 1_000_000_001, BucketMid},
		{"exactly 1B is small", 1_000_000_000, BucketSmall},
		{"below 1B is small", 999_999_999, BucketSmall},
		{"zero is small", 0, BucketSmall},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Bucket(tc.marketCap); got != tc.want {
				t.Errorf("Bucket(%v) = %s, want %s", tc.marketCap, got, tc.want)
			}
		})
	}
}

func TestCoin_Change24h_MissingIsZero(t *testing.T) {
	coin := Coin{ID: "test"}
	if got := coin.Change24h(); got != 0 {
		t.Errorf("Expected 0 for missing change, got %v", got)
	}

	v := -3.75
	coin.PriceChange24h = &v
	if got := coin.Change24h(); got != -3.75 {
		t.Errorf("Expected -3.75, got %v", got)
	}
}

func TestCurrencyByCode(t *testing.T) {
	cur, ok := CurrencyByCode("eur")
	if !ok {
		t.Fatal("Expected eur to be supported")
	}
	if cur.Symbol != "€" || cur.Label != "EUR" {
		t.Errorf("Unexpected eur entry: %+v", cur)
	}

	if _, ok := CurrencyByCode("zar"); ok {
		t.Error("Expected zar to be unsupported")
	}
}

func TestValidBucket(t *testing.T) {
	for _, b := range []CapBucket{BucketAll, BucketLarge, BucketMid, BucketSmall} {
		if !ValidBucket(b) {
			t.Errorf("Expected %s to be valid", b)
		}
	}
	if ValidBucket("huge") {
		t.Error("Expected unknown bucket to be invalid")
	}
}

func TestFormatHistoryTime(t *testing.T) {
	// 2021-06-01T00:00:00Z
	got := FormatHistoryTime(1622505600000)
	if got != "6/1/2021" {
		t.Errorf("Expected 6/1/2021, got %s", got)
	}
}
