package io

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/ecopia-map/pnts_tiler/internal/data"
	"github.com/ecopia-map/pnts_tiler/tools"
)

func ecefPoints(t *testing.T) *data.PointSet {
	t.Helper()
	positions := []r3.Vector{
		{X: 4198944.123, Y: 174747.456, Z: 4781475.789},
		{X: 4198945.5, Y: 174748.25, Z: 4781476.125},
		{X: 4198950.75, Y: 174740.5, Z: 4781470.0},
	}
	colors := []data.Color{{255, 0, 0}, {0, 128, 255}, {1, 2, 3}}
	ps, err := data.NewPointSet(positions, colors)
	test.That(t, err, test.ShouldBeNil)
	return ps
}

func TestEncodePntsLayout(t *testing.T) {
	ps := ecefPoints(t)
	content, err := EncodePnts(ps.All(), true)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, string(content[0:4]), test.ShouldEqual, "pnts")
	test.That(t, binary.LittleEndian.Uint32(content[4:]), test.ShouldEqual, uint32(1))
	test.That(t, binary.LittleEndian.Uint32(content[8:]), test.ShouldEqual, uint32(len(content)))
	jsonLength := int(binary.LittleEndian.Uint32(content[12:]))
	binaryLength := int(binary.LittleEndian.Uint32(content[16:]))
	test.That(t, binary.LittleEndian.Uint32(content[20:]), test.ShouldEqual, uint32(0))
	test.That(t, binary.LittleEndian.Uint32(content[24:]), test.ShouldEqual, uint32(0))

	test.That(t, (PntsHeaderLength+jsonLength)%8, test.ShouldEqual, 0)
	test.That(t, binaryLength%8, test.ShouldEqual, 0)
	test.That(t, binaryLength, test.ShouldBeGreaterThanOrEqualTo, 3*15)
	test.That(t, PntsHeaderLength+jsonLength+binaryLength, test.ShouldEqual, len(content))

	var table map[string]interface{}
	err = json.Unmarshal(content[PntsHeaderLength:PntsHeaderLength+jsonLength], &table)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, table["POINTS_LENGTH"], test.ShouldEqual, 3.0)
	test.That(t, table["POSITION"], test.ShouldResemble, map[string]interface{}{"byteOffset": 0.0})
	test.That(t, table["RGB"], test.ShouldResemble, map[string]interface{}{"byteOffset": 36.0})
	test.That(t, len(table["RTC_CENTER"].([]interface{})), test.ShouldEqual, 3)

	// colors follow the positions and the padding is made of zeros
	body := content[PntsHeaderLength+jsonLength:]
	test.That(t, body[36:45], test.ShouldResemble, []byte{255, 0, 0, 0, 128, 255, 1, 2, 3})
	for _, b := range body[45:] {
		test.That(t, b, test.ShouldEqual, byte(0))
	}
}

func TestPntsRoundTripRecentered(t *testing.T) {
	ps := ecefPoints(t)
	content, err := EncodePnts(ps.All(), true)
	test.That(t, err, test.ShouldBeNil)

	tile, err := DecodePnts(content)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tile.PointsLength, test.ShouldEqual, 3)
	test.That(t, tile.RtcCenter, test.ShouldNotBeNil)

	for i := 0; i < ps.Len(); i++ {
		// offsets relative to the centroid are a few meters, well within float32 precision
		test.That(t, tile.Positions[i].Sub(ps.Position(i)).Norm(), test.ShouldBeLessThan, 1e-3)
		test.That(t, tile.Colors[i], test.ShouldResemble, ps.Color(i))
	}
}

func TestPntsRoundTripAbsolute(t *testing.T) {
	ps, err := data.NewPointSet([]r3.Vector{{X: 1.5, Y: -2.25, Z: 100}, {X: 0.1, Y: 0.2, Z: 0.3}}, nil)
	test.That(t, err, test.ShouldBeNil)

	content, err := EncodePnts(ps.All(), false)
	test.That(t, err, test.ShouldBeNil)
	tile, err := DecodePnts(content)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, tile.RtcCenter, test.ShouldBeNil)
	test.That(t, tile.Positions[0], test.ShouldResemble, r3.Vector{X: 1.5, Y: -2.25, Z: 100})
	test.That(t, tile.Positions[1].X, test.ShouldEqual, float64(float32(0.1)))
	test.That(t, tile.Colors[1], test.ShouldResemble, data.White)
}

func TestEncodeSubsetView(t *testing.T) {
	ps := ecefPoints(t)
	content, err := EncodePnts(data.NewView(ps, []int{2}), false)
	test.That(t, err, test.ShouldBeNil)
	tile, err := DecodePnts(content)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, tile.PointsLength, test.ShouldEqual, 1)
	test.That(t, tile.Colors[0], test.ShouldResemble, data.Color{1, 2, 3})
	test.That(t, tile.Positions[0].X, test.ShouldEqual, float64(float32(4198950.75)))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := DecodePnts([]byte("pnts"))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = DecodePnts(make([]byte, 40))
	test.That(t, err, test.ShouldNotBeNil)

	content, err := EncodePnts(ecefPoints(t).All(), true)
	test.That(t, err, test.ShouldBeNil)
	_, err = DecodePnts(content[:len(content)-8])
	test.That(t, err, test.ShouldNotBeNil)

	for _, table := range []string{
		`{"POINTS_LENGTH":-1,"POSITION":{"byteOffset":0},"RGB":{"byteOffset":0}}`,
		`{"POINTS_LENGTH":1,"POSITION":{"byteOffset":-12},"RGB":{"byteOffset":12}}`,
		`{"POINTS_LENGTH":1,"POSITION":{"byteOffset":0},"RGB":{"byteOffset":-3}}`,
		`{"POINTS_LENGTH":9223372036854775807,"POSITION":{"byteOffset":0},"RGB":{"byteOffset":0}}`,
		`{"POINTS_LENGTH":1,"POSITION":{"byteOffset":9223372036854775807},"RGB":{"byteOffset":12}}`,
	} {
		_, err = DecodePnts(rawTile(table, 16))
		test.That(t, err, test.ShouldNotBeNil)
	}
}

// Builds a tile with a valid header around an arbitrary feature table and a zeroed body
func rawTile(featureTableJson string, binaryLength int) []byte {
	table := append([]byte(featureTableJson), spacePadding(PntsHeaderLength+len(featureTableJson))...)
	byteLength := PntsHeaderLength + len(table) + binaryLength
	out := []byte(PntsMagic)
	for _, v := range []int{PntsVersion, byteLength, len(table), binaryLength, 0, 0} {
		out = binary.LittleEndian.AppendUint32(out, uint32(v))
	}
	out = append(out, table...)
	return append(out, make([]byte, binaryLength)...)
}

func TestWriteLeafLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TileFileName(1))

	byteLength, err := WriteLeaf(ecefPoints(t).All(), true, path)
	test.That(t, err, test.ShouldBeNil)

	info, err := os.Stat(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, int(info.Size()), test.ShouldEqual, byteLength)

	entries, err := os.ReadDir(dir)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(entries), test.ShouldEqual, 1)

	tile, err := ReadPnts(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tile.PointsLength, test.ShouldEqual, 3)
}

func TestWriteLeafEmptyViewWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TileFileName(1))

	_, err := WriteLeaf(data.NewView(ecefPoints(t), nil), true, path)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, tools.FileExists(path), test.ShouldBeFalse)
}

func TestStandardProducerWritesThroughConsumer(t *testing.T) {
	store := tools.NewOutputStore(t.TempDir())
	consumer := NewStandardConsumer(store)
	producer := NewStandardProducer(consumer, true)

	ps := ecefPoints(t)
	uri, err := producer.WriteTile(7, data.NewView(ps, []int{0, 1}))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, uri, test.ShouldEqual, "tile_7.pnts")
	test.That(t, store.Exists("tile_7.pnts"), test.ShouldBeTrue)
	test.That(t, producer.BytesWritten(), test.ShouldBeGreaterThan, PntsHeaderLength)

	tile, err := consumer.Load(uri)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tile.PointsLength, test.ShouldEqual, 2)
	test.That(t, math.Abs(tile.Positions[1].Z-4781476.125), test.ShouldBeLessThan, 1e-3)
}
