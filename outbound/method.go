package outbound

import (
	"slices"
	"strings"

	"github.com/emiago/sipgo/sip"
)

// DefaultMaxForwards is the Max-Forwards value of originated requests.
const DefaultMaxForwards = 70

var (
	contactMethods    = []sip.RequestMethod{sip.INVITE, sip.REGISTER, sip.SUBSCRIBE, sip.NOTIFY, sip.REFER, sip.UPDATE}
	dialogCreators    = []sip.RequestMethod{sip.INVITE, sip.SUBSCRIBE, sip.REFER}
	dialogTerminators = []sip.RequestMethod{sip.CANCEL, sip.BYE}
)

func containsMethod(set []sip.RequestMethod, m sip.RequestMethod) bool {
	return slices.ContainsFunc(set, func(v sip.RequestMethod) bool {
		return strings.EqualFold(string(v), string(m))
	})
}

// RequiresContact reports whether requests of the method carry a Contact header.
func RequiresContact(m sip.RequestMethod) bool { return containsMethod(contactMethods, m) }

// CreatesDialog reports whether requests of the method may create a dialog.
func CreatesDialog(m sip.RequestMethod) bool { return containsMethod(dialogCreators, m) }

// TerminatesDialog reports whether requests of the method terminate a dialog.
func TerminatesDialog(m sip.RequestMethod) bool { return containsMethod(dialogTerminators, m) }
