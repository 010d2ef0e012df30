package omnibox

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Input
		ok   bool
	}{
		{
			name: "empty",
			in:   "",
			ok:   false,
		},
		{
			name: "whitespace only",
			in:   "   \t ",
			ok:   false,
		},
		{
			name: "https url",
			in:   "https://example.com",
			want: Input{Kind: KindAddress, Value: "https://example.com", HasScheme: true},
			ok:   true,
		},
		{
			name: "http url",
			in:   "http://example.com/path",
			want: Input{Kind: KindAddress, Value: "http://example.com/path", HasScheme: true},
			ok:   true,
		},
		{
			name: "about blank",
			in:   "about:blank",
			want: Input{Kind: KindAddress, Value: "about:blank", HasScheme: true},
			ok:   true,
		},
		{
			name: "data url uppercase scheme",
			in:   "DATA:text/plain,hi",
			want: Input{Kind: KindAddress, Value: "DATA:text/plain,hi", HasScheme: true},
			ok:   true,
		},
		{
			name: "blob url",
			in:   "blob:https://example.com/uuid",
			want: Input{Kind: KindAddress, Value: "blob:https://example.com/uuid", HasScheme: true},
			ok:   true,
		},
		{
			name: "ftp scheme",
			in:   "ftp://files.example.com",
			want: Input{Kind: KindAddress, Value: "ftp://files.example.com", HasScheme: true},
			ok:   true,
		},
		{
			name: "scheme with plus and digits",
			in:   "git+ssh://host/repo",
			want: Input{Kind: KindAddress, Value: "git+ssh://host/repo", HasScheme: true},
			ok:   true,
		},
		{
			name: "multi word query",
			in:   "hello world",
			want: Input{Kind: KindSearch, Value: "hello world"},
			ok:   true,
		},
		{
			name: "query with dot and space stays search",
			in:   "golang 1.25 release notes",
			want: Input{Kind: KindSearch, Value: "golang 1.25 release notes"},
			ok:   true,
		},
		{
			name: "input trimmed before classification",
			in:   "  example.com  ",
			want: Input{Kind: KindAddress, Value: "example.com"},
			ok:   true,
		},
		{
			name: "localhost",
			in:   "localhost",
			want: Input{Kind: KindAddress, Value: "localhost"},
			ok:   true,
		},
		{
			name: "localhost with port",
			in:   "localhost:8080",
			want: Input{Kind: KindAddress, Value: "localhost:8080"},
			ok:   true,
		},
		{
			name: "localhost with port and path",
			in:   "localhost:8080/admin",
			want: Input{Kind: KindAddress, Value: "localhost:8080/admin"},
			ok:   true,
		},
		{
			name: "ipv4",
			in:   "192.168.1.1",
			want: Input{Kind: KindAddress, Value: "192.168.1.1"},
			ok:   true,
		},
		{
			name: "ipv4 with path",
			in:   "192.168.1.1/path",
			want: Input{Kind: KindAddress, Value: "192.168.1.1/path"},
			ok:   true,
		},
		{
			name: "ipv4 with port",
			in:   "10.0.0.2:9090",
			want: Input{Kind: KindAddress, Value: "10.0.0.2:9090"},
			ok:   true,
		},
		{
			name: "bare domain",
			in:   "example.com",
			want: Input{Kind: KindAddress, Value: "example.com"},
			ok:   true,
		},
		{
			name: "short domain",
			in:   "a.b",
			want: Input{Kind: KindAddress, Value: "a.b"},
			ok:   true,
		},
		{
			name: "domain with path",
			in:   "news.cn/world",
			want: Input{Kind: KindAddress, Value: "news.cn/world"},
			ok:   true,
		},
		{
			name: "single word query",
			in:   "cats",
			want: Input{Kind: KindSearch, Value: "cats"},
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.in)
			if ok != tt.ok {
				t.Fatalf("Classify(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("Classify(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsOpaque(t *testing.T) {
	for in, want := range map[string]bool{
		"about:blank":            true,
		"data:text/plain,x":      true,
		"blob:https://x/y":       true,
		"ABOUT:CONFIG":           true,
		"https://example.com":    false,
		"aboutish://example.com": false,
	} {
		if got := IsOpaque(in); got != want {
			t.Errorf("IsOpaque(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInsecureVariant(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com", "http://example.com"},
		{"HTTPS://example.com/a", "http://example.com/a"},
		{"http://example.com", "http://example.com"},
	}
	for _, tt := range tests {
		if got := InsecureVariant(tt.in); got != tt.want {
			t.Errorf("InsecureVariant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSearchURL(t *testing.T) {
	got := SearchURL("https://www.bing.com/search?q=%s", "hello world")
	want := "https://www.bing.com/search?q=hello+world"
	if got != want {
		t.Fatalf("SearchURL = %q, want %q", got, want)
	}
}
