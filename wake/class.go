package wake

// Class identifies a vessel's weight/speed/hull-length profile.
type Class int

// The four vessel classes.
const (
	ClassSpeedboat Class = iota
	ClassCargo
	ClassSailboat
	ClassBarge

	numClasses
)

// A ClassProfile describes one vessel class. Weight is dimensionless in
// (0, 1]; speeds are in simulation units per second; SpawnWeight is the
// class's share of the spawn distribution out of 100.
type ClassProfile struct {
	Name        string
	Weight      float64
	MinSpeed    float64
	MaxSpeed    float64
	HullLength  float64
	SpawnWeight int
}

// The profile table is fixed at compile time and read-only at runtime.
var classProfiles = [numClasses]ClassProfile{
	ClassSpeedboat: {
		Name:        "speedboat",
		Weight:      0.25,
		MinSpeed:    8.0,
		MaxSpeed:    14.0,
		HullLength:  5.0,
		SpawnWeight: 30,
	},
	ClassCargo: {
		Name:        "cargo",
		Weight:      1.0,
		MinSpeed:    6.0,
		MaxSpeed:    9.0,
		HullLength:  24.0,
		SpawnWeight: 20,
	},
	ClassSailboat: {
		Name:        "sailboat",
		Weight:      0.35,
		MinSpeed:    2.0,
		MaxSpeed:    4.5,
		HullLength:  9.0,
		SpawnWeight: 30,
	},
	ClassBarge: {
		Name:        "barge",
		Weight:      0.85,
		MinSpeed:    1.5,
		MaxSpeed:    3.0,
		HullLength:  18.0,
		SpawnWeight: 20,
	},
}

// Profile returns the class's profile.
func (c Class) Profile() ClassProfile {
	return classProfiles[c]
}

// String returns the class name.
func (c Class) String() string {
	return classProfiles[c].Name
}

// drawClass picks a class from the fixed weighted spawn distribution.
func drawClass(rng Rand) Class {
	total := 0
	for _, p := range classProfiles {
		total += p.SpawnWeight
	}

	n := rng.Intn(total)
	for c, p := range classProfiles {
		n -= p.SpawnWeight
		if n < 0 {
			return Class(c)
		}
	}

	return ClassBarge
}
