package specifier

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input       string
		wantName    string
		wantRaw     string
		constraints int
		wantMarker  string
	}{
		{"pandas>=0.19.2", "pandas", "pandas", 1, ""},
		{"nibabel>=2.3.1", "nibabel", "nibabel", 1, ""},
		{"httpx", "httpx", "httpx", 0, ""},
		{"requests >= 2.28.0, < 3.0", "requests", "requests", 2, ""},
		{"Django==4.2", "django", "Django", 1, ""},
		{"zope.interface>=5.0", "zope-interface", "zope.interface", 1, ""},
		{"typing_extensions~=4.1", "typing-extensions", "typing_extensions", 1, ""},
		{"pywin32>=1.0; sys_platform == \"win32\"", "pywin32", "pywin32", 1, `sys_platform == "win32"`},
		{"numpy (>=1.20)", "numpy", "numpy", 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if spec.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", spec.Name, tt.wantName)
			}
			if spec.Raw != tt.wantRaw {
				t.Errorf("Raw = %q, want %q", spec.Raw, tt.wantRaw)
			}
			if len(spec.Constraints) != tt.constraints {
				t.Errorf("len(Constraints) = %d, want %d", len(spec.Constraints), tt.constraints)
			}
			if spec.Marker != tt.wantMarker {
				t.Errorf("Marker = %q, want %q", spec.Marker, tt.wantMarker)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"   ",
		">=1.0",
		"pkg>>1.0",
		"pkg==",
		"pkg>=1.0,bogus",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", input)
			}
		})
	}
}

func TestSpecifier_String(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"pandas>=0.19.2", "pandas>=0.19.2"},
		{"requests >= 2.28.0, < 3.0", "requests>=2.28.0,<3.0"},
		{"Typing_Extensions~=4.1", "typing-extensions~=4.1"},
		{"httpx", "httpx"},
	}

	for _, tt := range tests {
		spec, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.input, err)
		}
		if got := spec.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSpecifier_Matches(t *testing.T) {
	tests := []struct {
		spec    string
		version string
		want    bool
	}{
		{"pandas>=0.19.2", "0.19.2", true},
		{"pandas>=0.19.2", "1.0.0", true},
		{"pandas>=0.19.2", "0.19.1", false},
		{"requests>=2.28.0,<3.0", "2.31.0", true},
		{"requests>=2.28.0,<3.0", "3.0.0", false},
		{"django==4.2", "4.2", true},
		{"django==4.2", "4.2.0", true},
		{"django==4.2.*", "4.2.11", true},
		{"django==4.2.*", "4.3.0", false},
		{"django!=4.2", "4.2", false},
		{"django!=4.2", "4.3", true},
		{"pkg~=1.4.2", "1.4.5", true},
		{"pkg~=1.4.2", "1.5.0", false},
		{"pkg~=1.4.2", "1.4.1", false},
		{"httpx", "0.0.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.spec+"/"+tt.version, func(t *testing.T) {
			spec, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.spec, err)
			}
			if got := spec.Matches(tt.version); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0.0", 0},
		{"0.0.1", "0.0.2", -1},
		{"2.10", "2.9", 1},
		{"1.0.0", "1.0", 0},
		{"0.19.2", "0.19.10", -1},
	}

	for _, tt := range tests {
		if got := CompareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Django", "django"},
		{"typing_extensions", "typing-extensions"},
		{"zope.interface", "zope-interface"},
		{"some--pkg__name", "some-pkg-name"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
