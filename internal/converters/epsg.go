package converters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var fixedDefinitions = map[int]string{
	4326: "+proj=longlat +datum=WGS84 +no_defs",
	4674: "+proj=longlat +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +no_defs", // SIRGAS 2000
	4978: "+proj=geocent +datum=WGS84 +units=m +no_defs",
	3395: "+proj=merc +lon_0=0 +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs",
	3857: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +nadgrids=@null +wktext +no_defs",
}

// Returns the proj4 definition string for the given EPSG code. Besides a handful of fixed systems,
// WGS84 UTM (326zz/327zz) and SIRGAS 2000 UTM (31965-31976 north, 31977-31985 south) zones are generated.
func ProjDefinition(srid int) (string, bool) {
	if def, ok := fixedDefinitions[srid]; ok {
		return def, true
	}
	switch {
	case srid >= 32601 && srid <= 32660:
		return utmDefinition(srid-32600, false, "+datum=WGS84"), true
	case srid >= 32701 && srid <= 32760:
		return utmDefinition(srid-32700, true, "+datum=WGS84"), true
	case srid >= 31965 && srid <= 31976:
		return utmDefinition(srid-31965+11, false, "+ellps=GRS80 +towgs84=0,0,0,0,0,0,0"), true
	case srid >= 31977 && srid <= 31985:
		return utmDefinition(srid-31977+17, true, "+ellps=GRS80 +towgs84=0,0,0,0,0,0,0"), true
	}
	return "", false
}

func utmDefinition(zone int, south bool, datum string) string {
	def := fmt.Sprintf("+proj=utm +zone=%d", zone)
	if south {
		def += " +south"
	}
	return def + " " + datum + " +units=m +no_defs"
}

// Parses a horizontal reference system identifier such as "EPSG:31983" or "31983"
func ParseSrid(srs string) (int, error) {
	value := strings.TrimSpace(srs)
	if idx := strings.LastIndex(value, ":"); idx >= 0 {
		if !strings.EqualFold(strings.TrimSpace(value[:idx]), "EPSG") {
			return 0, errors.Errorf("unsupported authority in %q", srs)
		}
		value = strings.TrimSpace(value[idx+1:])
	}
	srid, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid EPSG code %q", srs)
	}
	if srid <= 0 {
		return 0, errors.Errorf("invalid EPSG code %q", srs)
	}
	return srid, nil
}
