package gorules

import (
	"github.com/quasilyte/go-ruleguard/dsl"
)

func OsFilePermissionRule(m dsl.Matcher) {
	m.Match(`os.$name($file, $number, 0777)`).Report("os.$name called with file mode 0777")
	m.Match(`os.$name($file, 0777)`).Report("os.$name called with file mode 0777")
	m.Match(`os.$name(0777)`).Report("os.$name called with file mode 0777")

	m.Match(`os.$name($file, $number, os.ModePerm)`).Report("os.$name called with file mode os.ModePerm (0777)")
	m.Match(`os.$name($file, os.ModePerm)`).Report("os.$name called with file mode os.ModePerm (0777)")
	m.Match(`os.$name(os.ModePerm)`).Report("os.$name called with file mode os.ModePerm (0777)")
}

func ForbidPanicsRule(m dsl.Matcher) {
	m.Match(`panic($_)`).Report("panics should not be manually used")
}

// Packet ids must go through types.CreatePacketID so the separator and
// the serial number formatting stay in one place
func PacketIDConcatRule(m dsl.Matcher) {
	m.Match(`types.PacketID($a + "-" + $b + "-" + $c)`).
		Report("use types.CreatePacketID instead of concatenating packet id parts")
	m.Match(`types.PacketID(fmt.Sprintf($*_))`).
		Report("use types.CreatePacketID instead of formatting packet ids")
}

// Serial numbers are big integers and must be compared by value
func BigIntPointerEqualityRule(m dsl.Matcher) {
	m.Match(`$x == $y`, `$x != $y`).
		Where(m["x"].Type.Is(`*big.Int`) && m["y"].Type.Is(`*big.Int`)).
		Report("compare *big.Int values with Cmp, not by pointer")
}
