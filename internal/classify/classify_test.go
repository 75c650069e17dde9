package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want DocumentType
	}{
		{
			name: "id card keyword",
			text: "주민등록증 홍길동 123456-1234567 서울특별시",
			want: IDCard,
		},
		{
			name: "driver license keywords",
			text: "자동차운전면허증 12-34-567890-12 홍길동",
			want: DriverLicense,
		},
		{
			name: "passport keywords",
			text: "PASSPORT 대한민국 REPUBLIC OF KOREA M12345678",
			want: Passport,
		},
		{
			name: "case insensitive",
			text: "Republic Of Korea passport",
			want: Passport,
		},
		{
			name: "no keywords",
			text: "hello world 12345",
			want: Unknown,
		},
		{
			name: "empty text",
			text: "",
			want: Unknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_CharacterFallback(t *testing.T) {
	// OCR scrambles character order on laminated cards; a keyword whose
	// characters are all present, just not contiguous, still scores half a
	// point and can carry the classification.
	got := Classify("등록 주민 증")
	if got != IDCard {
		t.Errorf("scrambled id-card characters: got %v, want IDCard", got)
	}
}

func TestClassify_ExclusiveKeywords(t *testing.T) {
	// Text with only one type's keywords must classify as that type, not
	// any other.
	got := Classify("운전면허증")
	if got != DriverLicense {
		t.Errorf("got %v, want DriverLicense", got)
	}
	if other := Classify("여권"); other != Passport {
		t.Errorf("got %v, want Passport", other)
	}
}

func TestDocumentType_String(t *testing.T) {
	tests := []struct {
		t    DocumentType
		want string
	}{
		{Unknown, "unknown"},
		{IDCard, "id_card"},
		{DriverLicense, "driver_license"},
		{Passport, "passport"},
		{DocumentType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.t), got, tt.want)
		}
	}
}
