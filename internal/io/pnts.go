package io

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ecopia-map/pnts_tiler/internal/data"
)

const (
	PntsMagic        = "pnts"
	PntsVersion      = 1
	PntsHeaderLength = 28
	TileExtension    = ".pnts"

	// decimals kept for RTC_CENTER, positions are expressed relative to the rounded value
	rtcCenterDecimals = 6
)

func TileFileName(tileID int) string {
	return "tile_" + strconv.Itoa(tileID) + TileExtension
}

type byteOffset struct {
	ByteOffset int `json:"byteOffset"`
}

type featureTable struct {
	PointsLength int        `json:"POINTS_LENGTH"`
	RtcCenter    []float64  `json:"RTC_CENTER,omitempty"`
	Position     byteOffset `json:"POSITION"`
	Rgb          byteOffset `json:"RGB"`
}

// Decoded content of a tile file. Positions are absolute, RTC_CENTER already added back.
type PntsTile struct {
	PointsLength int
	RtcCenter    *r3.Vector
	Positions    []r3.Vector
	Colors       []data.Color
}

// Serializes the points of a leaf into a pnts tile with an uncompressed feature table: float32 positions
// followed by 8 bit RGB. With recenter the positions are stored relative to the rounded points centroid.
func EncodePnts(points data.View, recenter bool) ([]byte, error) {
	numPoints := points.Len()
	if numPoints == 0 {
		return nil, errors.New("cannot encode an empty tile")
	}

	var center r3.Vector
	table := featureTable{
		PointsLength: numPoints,
		Position:     byteOffset{ByteOffset: 0},
		Rgb:          byteOffset{ByteOffset: numPoints * 12},
	}
	if recenter {
		center = roundVector(points.Centroid(), rtcCenterDecimals)
		table.RtcCenter = []float64{center.X, center.Y, center.Z}
	}

	featureTableJson, err := json.Marshal(table)
	if err != nil {
		return nil, errors.Wrap(err, "encoding feature table")
	}
	featureTableJson = append(featureTableJson, spacePadding(PntsHeaderLength+len(featureTableJson))...)

	binaryLength := numPoints*12 + numPoints*3
	binaryLength += padding(binaryLength)

	byteLength := PntsHeaderLength + len(featureTableJson) + binaryLength
	out := make([]byte, 0, byteLength)
	out = append(out, PntsMagic...)
	out = binary.LittleEndian.AppendUint32(out, PntsVersion)
	out = binary.LittleEndian.AppendUint32(out, uint32(byteLength))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(featureTableJson)))
	out = binary.LittleEndian.AppendUint32(out, uint32(binaryLength))
	out = binary.LittleEndian.AppendUint32(out, 0) // batch table json
	out = binary.LittleEndian.AppendUint32(out, 0) // batch table binary
	out = append(out, featureTableJson...)

	for i := 0; i < numPoints; i++ {
		p := points.Position(i).Sub(center)
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(float32(p.X)))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(float32(p.Y)))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(float32(p.Z)))
	}
	for i := 0; i < numPoints; i++ {
		c := points.Color(i)
		out = append(out, c[0], c[1], c[2])
	}
	out = append(out, make([]byte, byteLength-len(out))...)

	return out, nil
}

// Parses a tile produced by EncodePnts
func DecodePnts(content []byte) (*PntsTile, error) {
	if len(content) < PntsHeaderLength {
		return nil, errors.Errorf("tile too short: %d bytes", len(content))
	}
	if string(content[0:4]) != PntsMagic {
		return nil, errors.Errorf("bad magic %q", content[0:4])
	}
	header := make([]uint32, 6)
	for i := range header {
		header[i] = binary.LittleEndian.Uint32(content[4+i*4:])
	}
	version, byteLength, jsonLength, binaryLength := header[0], int(header[1]), int(header[2]), int(header[3])
	if version != PntsVersion {
		return nil, errors.Errorf("unsupported pnts version %d", version)
	}
	if byteLength != len(content) || jsonLength > byteLength-PntsHeaderLength || binaryLength > byteLength-PntsHeaderLength-jsonLength {
		return nil, errors.Errorf("inconsistent tile lengths: byteLength %d, file %d, json %d, binary %d", byteLength, len(content), jsonLength, binaryLength)
	}

	var table featureTable
	if err := json.Unmarshal(content[PntsHeaderLength:PntsHeaderLength+jsonLength], &table); err != nil {
		return nil, errors.Wrap(err, "decoding feature table")
	}
	numPoints := table.PointsLength
	if numPoints < 0 || table.Position.ByteOffset < 0 || table.Rgb.ByteOffset < 0 {
		return nil, errors.Errorf("negative feature table value: POINTS_LENGTH %d, POSITION %d, RGB %d",
			numPoints, table.Position.ByteOffset, table.Rgb.ByteOffset)
	}
	body := content[PntsHeaderLength+jsonLength : PntsHeaderLength+jsonLength+binaryLength]
	if !fitsIn(table.Position.ByteOffset, numPoints, 12, len(body)) || !fitsIn(table.Rgb.ByteOffset, numPoints, 3, len(body)) {
		return nil, errors.Errorf("feature table binary too short for %d points", numPoints)
	}

	tile := &PntsTile{
		PointsLength: numPoints,
		Positions:    make([]r3.Vector, numPoints),
		Colors:       make([]data.Color, numPoints),
	}
	var center r3.Vector
	if len(table.RtcCenter) == 3 {
		center = r3.Vector{X: table.RtcCenter[0], Y: table.RtcCenter[1], Z: table.RtcCenter[2]}
		tile.RtcCenter = &center
	}

	readFloat := func(offset int) float64 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(body[offset:])))
	}
	for i := 0; i < numPoints; i++ {
		offset := table.Position.ByteOffset + i*12
		tile.Positions[i] = r3.Vector{X: readFloat(offset), Y: readFloat(offset + 4), Z: readFloat(offset + 8)}.Add(center)

		colorOffset := table.Rgb.ByteOffset + i*3
		copy(tile.Colors[i][:], body[colorOffset:colorOffset+3])
	}

	return tile, nil
}

// Reports whether count elements of size bytes starting at offset fit in length bytes, without
// overflowing. Arguments must be non negative.
func fitsIn(offset, count, size, length int) bool {
	if offset > length {
		return false
	}
	return count <= (length-offset)/size
}

// Number of bytes needed to bring length to a multiple of 8
func padding(length int) int {
	return (8 - length%8) % 8
}

func spacePadding(length int) []byte {
	pad := make([]byte, padding(length))
	for i := range pad {
		pad[i] = ' '
	}
	return pad
}

func roundVector(v r3.Vector, places int32) r3.Vector {
	round := func(f float64) float64 {
		rounded, _ := decimal.NewFromFloat(f).Round(places).Float64()
		return rounded
	}
	return r3.Vector{X: round(v.X), Y: round(v.Y), Z: round(v.Z)}
}
