package gazetteer

import "github.com/sells-group/localrank/internal/model"

// builtin maps common US metro names to canonical center coordinates.
// Never mutated after init.
var builtin = map[string]model.Coordinate{
	"new york":      {Latitude: 40.7128, Longitude: -74.0060},
	"los angeles":   {Latitude: 34.0522, Longitude: -118.2437},
	"chicago":       {Latitude: 41.8781, Longitude: -87.6298},
	"houston":       {Latitude: 29.7604, Longitude: -95.3698},
	"phoenix":       {Latitude: 33.4484, Longitude: -112.0740},
	"philadelphia":  {Latitude: 39.9526, Longitude: -75.1652},
	"san antonio":   {Latitude: 29.4241, Longitude: -98.4936},
	"san diego":     {Latitude: 32.7157, Longitude: -117.1611},
	"dallas":        {Latitude: 32.7767, Longitude: -96.7970},
	"san jose":      {Latitude: 37.3382, Longitude: -121.8863},
	"austin":        {Latitude: 30.2672, Longitude: -97.7431},
	"jacksonville":  {Latitude: 30.3322, Longitude: -81.6557},
	"fort worth":    {Latitude: 32.7555, Longitude: -97.3308},
	"columbus":      {Latitude: 39.9612, Longitude: -82.9988},
	"charlotte":     {Latitude: 35.2271, Longitude: -80.8431},
	"san francisco": {Latitude: 37.7749, Longitude: -122.4194},
	"indianapolis":  {Latitude: 39.7684, Longitude: -86.1581},
	"seattle":       {Latitude: 47.6062, Longitude: -122.3321},
	"denver":        {Latitude: 39.7392, Longitude: -104.9903},
	"washington":    {Latitude: 38.9072, Longitude: -77.0369},
	"boston":        {Latitude: 42.3601, Longitude: -71.0589},
	"nashville":     {Latitude: 36.1627, Longitude: -86.7816},
	"portland":      {Latitude: 45.5152, Longitude: -122.6784},
	"las vegas":     {Latitude: 36.1699, Longitude: -115.1398},
	"miami":         {Latitude: 25.7617, Longitude: -80.1918},
	"atlanta":       {Latitude: 33.7490, Longitude: -84.3880},
	"minneapolis":   {Latitude: 44.9778, Longitude: -93.2650},
	"tampa":         {Latitude: 27.9506, Longitude: -82.4572},
	"orlando":       {Latitude: 28.5384, Longitude: -81.3789},
	"detroit":       {Latitude: 42.3314, Longitude: -83.0458},
}
