package converters

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestParseSrid(t *testing.T) {
	srid, err := ParseSrid("EPSG:31983")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, srid, test.ShouldEqual, 31983)

	srid, err = ParseSrid(" epsg: 4326 ")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, srid, test.ShouldEqual, 4326)

	srid, err = ParseSrid("32723")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, srid, test.ShouldEqual, 32723)

	_, err = ParseSrid("ESRI:102100")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ParseSrid("EPSG:abc")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ParseSrid("")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestProjDefinition(t *testing.T) {
	def, ok := ProjDefinition(31983)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, def, test.ShouldContainSubstring, "+zone=23 +south")
	test.That(t, def, test.ShouldContainSubstring, "+ellps=GRS80")

	def, ok = ProjDefinition(32633)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, def, test.ShouldContainSubstring, "+zone=33 +datum=WGS84")
	test.That(t, def, test.ShouldNotContainSubstring, "+south")

	def, ok = ProjDefinition(WGS84CartesianSrid)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, def, test.ShouldContainSubstring, "+proj=geocent")

	_, ok = ProjDefinition(1234)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestIdentityConverter(t *testing.T) {
	c := NewIdentityConverter()
	defer c.Cleanup()
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	out, err := c.ConvertToWGS84Cartesian(v, 31983)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldResemble, v)
}
