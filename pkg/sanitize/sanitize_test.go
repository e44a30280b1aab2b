package sanitize

import "testing"

func TestPlainText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"  Launch day  ", "Launch day"},
		{"<b>Bold</b> move", "Bold move"},
		{`<script>alert("x")</script>Title`, "Title"},
		{"Tom & Jerry", "Tom & Jerry"},
	}
	for _, tc := range cases {
		if got := PlainText(tc.in); got != tc.want {
			t.Errorf("PlainText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHTML(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"line one\nline two", "line one<br>line two"},
		{"a < b", "a &lt; b"},
		{`<p onclick="x()">Hi <em>there</em></p>`, "<p>Hi <em>there</em></p>"},
		{`<script>alert(1)</script><p>ok</p>`, "<p>ok</p>"},
	}
	for _, tc := range cases {
		if got := HTML(tc.in); got != tc.want {
			t.Errorf("HTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
