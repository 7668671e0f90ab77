package catalog

// canonicalBodies is the fixed scope of the orrery: the sun, eight planets,
// Earth's moon and Saturn's rings.
var canonicalBodies = []Body{
	{
		ID:                Sun,
		Name:              "Sun",
		Kind:              KindStar,
		Radius:            8,
		AxialRotationRate: 0.005,
		Color:             "#FFDD00",
		Info: Info{
			Distance:    "0 km (center)",
			Diameter:    "1,392,700 km",
			Period:      "N/A",
			Temperature: "5,778 K (surface)",
			Description: "The Sun is the star at the center of our solar system. It contains 99.86% of the mass in the solar system.",
		},
	},
	{
		ID:                  Mercury,
		Name:                "Mercury",
		Kind:                KindPlanet,
		OrbitalDistance:     20,
		RelativeOrbitalRate: 4.15,
		Radius:              0.38,
		AxialTilt:           0.034,
		AxialRotationRate:   0.004,
		Color:               "#CFD8DC",
		Info: Info{
			Distance:    "57.9 million km",
			Diameter:    "4,879 km",
			Period:      "88 Earth days",
			Temperature: "167°C (day), -173°C (night)",
			Description: "The smallest planet in our solar system and closest to the Sun. Mercury has extreme temperature variations.",
		},
	},
	{
		ID:                  Venus,
		Name:                "Venus",
		Kind:                KindPlanet,
		OrbitalDistance:     30,
		RelativeOrbitalRate: 1.62,
		Radius:              0.95,
		AxialTilt:           3.096,
		AxialRotationRate:   -0.002,
		Color:               "#FFCCBC",
		Info: Info{
			Distance:    "108.2 million km",
			Diameter:    "12,104 km",
			Period:      "225 Earth days",
			Temperature: "462°C",
			Description: "The hottest planet in our solar system with a thick, toxic atmosphere composed mainly of carbon dioxide.",
		},
	},
	{
		ID:                  Earth,
		Name:                "Earth",
		Kind:                KindPlanet,
		OrbitalDistance:     40,
		RelativeOrbitalRate: 1.0,
		Radius:              1.0,
		AxialTilt:           0.409,
		AxialRotationRate:   0.02,
		Color:               "#81D4FA",
		Satellite: &Body{
			ID:              Moon,
			Name:            "Moon",
			Kind:            KindSatellite,
			OrbitalDistance: 2,
			Radius:          0.27,
			Color:           "#E0E0E0",
			Info: Info{
				Distance:    "384,400 km from Earth",
				Diameter:    "3,474 km",
				Period:      "27.3 Earth days",
				Temperature: "127°C (day), -173°C (night)",
				Description: "Earth's only natural satellite. It is tidally locked, so the same face always points at Earth.",
			},
		},
		Info: Info{
			Distance:    "149.6 million km",
			Diameter:    "12,756 km",
			Period:      "365.25 days",
			Temperature: "15°C (average)",
			Description: "Our home planet, the only known planet to harbor life. Earth has liquid water and a protective atmosphere.",
		},
	},
	{
		ID:                  Mars,
		Name:                "Mars",
		Kind:                KindPlanet,
		OrbitalDistance:     50,
		RelativeOrbitalRate: 0.53,
		Radius:              0.53,
		AxialTilt:           0.439,
		AxialRotationRate:   0.019,
		Color:               "#FF8A65",
		Info: Info{
			Distance:    "227.9 million km",
			Diameter:    "6,792 km",
			Period:      "687 Earth days",
			Temperature: "-65°C (average)",
			Description: "Known as the Red Planet due to iron oxide on its surface. Mars has the largest volcano in the solar system.",
		},
	},
	{
		ID:                  Jupiter,
		Name:                "Jupiter",
		Kind:                KindPlanet,
		OrbitalDistance:     70,
		RelativeOrbitalRate: 0.084,
		Radius:              11.2,
		AxialTilt:           0.054,
		AxialRotationRate:   0.045,
		HasSpot:             true,
		Color:               "#FFE0B2",
		Info: Info{
			Distance:    "778.5 million km",
			Diameter:    "142,984 km",
			Period:      "12 Earth years",
			Temperature: "-110°C",
			Description: "The largest planet in our solar system. Jupiter is a gas giant with a Great Red Spot storm larger than Earth.",
		},
	},
	{
		ID:                  Saturn,
		Name:                "Saturn",
		Kind:                KindPlanet,
		OrbitalDistance:     95,
		RelativeOrbitalRate: 0.034,
		Radius:              9.45,
		AxialTilt:           0.466,
		AxialRotationRate:   0.038,
		HasRings:            true,
		Color:               "#FFF9C4",
		Info: Info{
			Distance:    "1.43 billion km",
			Diameter:    "120,536 km",
			Period:      "29 Earth years",
			Temperature: "-140°C",
			Description: "Famous for its prominent ring system. Saturn is less dense than water and has 82 known moons.",
		},
	},
	{
		ID:                  Uranus,
		Name:                "Uranus",
		Kind:                KindPlanet,
		OrbitalDistance:     120,
		RelativeOrbitalRate: 0.012,
		Radius:              4.0,
		AxialTilt:           1.706,
		AxialRotationRate:   0.014,
		Color:               "#B3E5FC",
		Info: Info{
			Distance:    "2.87 billion km",
			Diameter:    "51,118 km",
			Period:      "84 Earth years",
			Temperature: "-195°C",
			Description: "An ice giant that rotates on its side. Uranus has a faint ring system and 27 known moons.",
		},
	},
	{
		ID:                  Neptune,
		Name:                "Neptune",
		Kind:                KindPlanet,
		OrbitalDistance:     140,
		RelativeOrbitalRate: 0.006,
		Radius:              3.88,
		AxialTilt:           0.494,
		AxialRotationRate:   0.016,
		Color:               "#90CAF9",
		Info: Info{
			Distance:    "4.5 billion km",
			Diameter:    "49,528 km",
			Period:      "165 Earth years",
			Temperature: "-200°C",
			Description: "The windiest planet with speeds up to 2,100 km/h. Neptune is the farthest planet from the Sun.",
		},
	},
}
