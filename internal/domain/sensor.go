package domain

import "time"

// SensorKind identifies one of the simulated sensors on the node.
type SensorKind string

const (
	Temperature    SensorKind = "temperature"
	SoilMoisture   SensorKind = "soil_moisture"
	LightIntensity SensorKind = "light_intensity"
	Co2Level       SensorKind = "co2_level"
	Humidity       SensorKind = "humidity"
)

// sensorOrder fixes the canonical ordering of readings within a cycle batch.
var sensorOrder = []SensorKind{Temperature, SoilMoisture, LightIntensity, Co2Level, Humidity}

// Range bounds the values a sensor kind may produce, inclusive on both ends.
type Range struct {
	Min  float64
	Max  float64
	Unit string
}

// Catalog maps every sensor kind the node carries to its valid range and unit.
// It is resolved once at startup and never mutated afterwards.
type Catalog map[SensorKind]Range

// DefaultCatalog returns the sensor bank of a standard field node.
func DefaultCatalog() Catalog {
	return Catalog{
		Temperature:    {Min: 20, Max: 30, Unit: "°C"},
		SoilMoisture:   {Min: 30, Max: 70, Unit: "%"},
		LightIntensity: {Min: 0, Max: 100, Unit: "lux"},
		Co2Level:       {Min: 300, Max: 1000, Unit: "ppm"},
		Humidity:       {Min: 40, Max: 80, Unit: "%"},
	}
}

// Kinds returns the catalog's sensor kinds in canonical order.
func (c Catalog) Kinds() []SensorKind {
	kinds := make([]SensorKind, 0, len(c))
	for _, kind := range sensorOrder {
		if _, ok := c[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Reading is a single timestamped sensor measurement.
type Reading struct {
	Kind      SensorKind `json:"sensor_type"`
	Value     float64    `json:"value"`
	Unit      string     `json:"unit"`
	Timestamp time.Time  `json:"timestamp"`
}

// CycleBatch holds one cycle's readings, one per sensor kind, all sharing
// the timestamp the cycle started with.
type CycleBatch []Reading

// Value returns the reading value for the given kind, if present.
func (b CycleBatch) Value(kind SensorKind) (float64, bool) {
	for _, r := range b {
		if r.Kind == kind {
			return r.Value, true
		}
	}
	return 0, false
}
