package header_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sipkit/egress/outbound/header"
)

func TestCanonicName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want header.Name
	}{
		{"via", "Via"},
		{"  content-type ", "Content-Type"},
		{"call-id", "Call-ID"},
		{"CSEQ", "CSeq"},
		{"mime-version", "MIME-Version"},
		{"www-authenticate", "WWW-Authenticate"},
		{"rack", "RAck"},
		{"rseq", "RSeq"},
		{"p-associated-uri", "P-Associated-URI"},
		{"p-visited-network-id", "P-Visited-Network-ID"},
		{"v", "Via"},
		{"M", "Contact"},
		{"x-custom-header", "X-Custom-Header"},
	}

	for _, c := range cases {
		if got := header.CanonicName(c.in); got != c.want {
			t.Errorf("header.CanonicName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestName_Equal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name header.Name
		val  any
		want bool
	}{
		{"Via", header.Name("v"), true},
		{"Call-ID", "call-id", true},
		{"Contact", ptr(header.Name("m")), true},
		{"Contact", (*header.Name)(nil), false},
		{"To", header.Name("From"), false},
		{"To", 1, false},
	}

	for _, c := range cases {
		if got := c.name.Equal(c.val); got != c.want {
			t.Errorf("Name(%q).Equal(%v) = %v, want %v", c.name, c.val, got, c.want)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want header.Category
	}{
		{"From", header.CategorySystem | header.CategoryAddress | header.CategoryParameterable | header.CategorySingleton},
		{"via", header.CategorySystem | header.CategoryParameterable | header.CategoryList},
		{"v", header.CategorySystem | header.CategoryParameterable | header.CategoryList},
		{"Contact", header.CategoryAddress | header.CategoryParameterable | header.CategoryList},
		{"Record-Route", header.CategorySystem | header.CategoryAddress | header.CategoryParameterable | header.CategoryList},
		{"Content-Type", header.CategoryParameterable | header.CategorySingleton},
		{"Max-Forwards", header.CategorySingleton},
		{"Supported", header.CategoryList},
		{"RSeq", header.CategorySystem},
		{"x-initial-remote-addr", header.CategorySystem},
		{"X-Initial-Remote-Transport", header.CategorySystem},
		{"MSS_Initial_Remote_Addr", header.CategoryNone},
		{"WWW-Authenticate", header.CategorySingleton},
		{"Authorization", header.CategoryNone},
		{"X-Unknown", header.CategoryNone},
		{"", header.CategoryNone},
	}

	for _, c := range cases {
		if got := header.Classify(c.name); got != c.want {
			t.Errorf("header.Classify(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestClassify_SystemStable(t *testing.T) {
	t.Parallel()

	for _, n := range header.Names(header.CategorySystem) {
		for range 3 {
			if !header.IsSystem(n) {
				t.Errorf("header.IsSystem(%q) = false, want true", n)
			}
		}
	}

	want := []header.Name{
		"CSeq", "Call-ID", "From", "Path", "RAck", "RSeq", "Record-Route", "Route", "To", "Via",
		"X-Initial-Remote-Addr", "X-Initial-Remote-Port", "X-Initial-Remote-Transport",
	}
	if diff := cmp.Diff(want, header.Names(header.CategorySystem)); diff != "" {
		t.Errorf("header.Names(CategorySystem) mismatch (-want +got):\n%s", diff)
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                                         string
		system, address, parameterable, single, list bool
	}{
		{"to", true, true, true, true, false},
		{"Refer-To", false, true, true, false, false},
		{"r", false, true, true, false, false},
		{"Accept", false, false, true, false, true},
		{"Retry-After", false, false, true, true, false},
		{"P-Asserted-Identity", false, true, true, false, true},
		{"Proxy-Authenticate", false, false, false, true, false},
	}

	for _, c := range cases {
		if got := header.IsSystem(c.name); got != c.system {
			t.Errorf("header.IsSystem(%q) = %v, want %v", c.name, got, c.system)
		}
		if got := header.IsAddress(c.name); got != c.address {
			t.Errorf("header.IsAddress(%q) = %v, want %v", c.name, got, c.address)
		}
		if got := header.IsParameterable(c.name); got != c.parameterable {
			t.Errorf("header.IsParameterable(%q) = %v, want %v", c.name, got, c.parameterable)
		}
		if got := header.IsSingleton(c.name); got != c.single {
			t.Errorf("header.IsSingleton(%q) = %v, want %v", c.name, got, c.single)
		}
		if got := header.IsList(c.name); got != c.list {
			t.Errorf("header.IsList(%q) = %v, want %v", c.name, got, c.list)
		}
	}
}

func TestCategories_Invariants(t *testing.T) {
	t.Parallel()

	for _, n := range header.Names(header.CategorySingleton) {
		if header.IsList(n) {
			t.Errorf("%q is both singleton and list", n)
		}
	}
	for _, n := range header.Names(header.CategoryAddress) {
		if !header.IsParameterable(n) {
			t.Errorf("address header %q is not parameterable", n)
		}
	}
	if got := len(header.Names(header.CategorySingleton)); got != 22 {
		t.Errorf("len(header.Names(CategorySingleton)) = %d, want 22", got)
	}
}

func TestNames_ReturnsCopy(t *testing.T) {
	t.Parallel()

	names := header.Names(header.CategoryAddress)
	names[0] = "Mutated"
	if slices.Contains(header.Names(header.CategoryAddress), "Mutated") {
		t.Errorf("header.Names() exposes internal state")
	}
	if got := header.Names(header.CategoryNone); got != nil {
		t.Errorf("header.Names(CategoryNone) = %v, want nil", got)
	}
}

func TestCategory_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		c    header.Category
		want string
	}{
		{header.CategoryNone, "none"},
		{header.CategoryList, "list"},
		{header.CategorySystem | header.CategorySingleton, "system|singleton"},
	}
	for _, c := range cases {
		if got := c.c.String(); got != c.want {
			t.Errorf("Category(%d).String() = %q, want %q", c.c, got, c.want)
		}
	}
}

func ptr[T any](v T) *T { return &v }
