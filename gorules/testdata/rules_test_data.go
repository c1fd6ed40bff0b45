package target

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/0xPolygon/relay-aggregator/types"
)

func testLintError() {
	err := errors.New("test")
	a, b := big.NewInt(1), big.NewInt(1)

	os.Mkdir("test", 0777)                                     // want `OsFilePermissionRule: os.Mkdir called with file mode 0777`
	os.MkdirAll("test", os.ModePerm)                           // want `OsFilePermissionRule: os.MkdirAll called with file mode 0777`
	os.OpenFile("test", 0, 0777)                               // want `OsFilePermissionRule: os.OpenFile called with file mode 0777`
	panic(err)                                                 // want `ForbidPanicsRule: panics should not be manually used`
	_ = types.PacketID("icon" + "-" + "cx01" + "-" + "1")      // want `PacketIDConcatRule: use types.CreatePacketID instead of concatenating packet id parts`
	_ = types.PacketID(fmt.Sprintf("%s-%s-%d", "a", "b", 1))   // want `PacketIDConcatRule: use types.CreatePacketID instead of formatting packet ids`
	_ = a == b                                                 // want `BigIntPointerEqualityRule: compare \*big.Int values with Cmp, not by pointer`
	_ = a != b                                                 // want `BigIntPointerEqualityRule: compare \*big.Int values with Cmp, not by pointer`
}

func testLintOk() {
	a, b := big.NewInt(1), big.NewInt(1)

	os.MkdirAll("test", 0750)
	_ = types.CreatePacketID("icon", "cx01", big.NewInt(1))
	_ = a.Cmp(b) == 0
	_ = a == nil
}
