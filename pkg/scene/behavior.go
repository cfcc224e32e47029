package scene

import "math"

// Spin returns an update that turns an object at constant angular rates
// (radians per second) around X, Y and Z.
func Spin(rateX, rateY, rateZ float64) UpdateFunc {
	return func(o *Object, dt, _ float64) {
		o.Rotation.X += rateX * dt
		o.Rotation.Y += rateY * dt
		o.Rotation.Z += rateZ * dt
	}
}

// Bob returns an update that sets Position.Y to base + amplitude·sin(freq·t).
func Bob(base, amplitude, freq float64) UpdateFunc {
	return func(o *Object, _, t float64) {
		o.Position.Y = base + amplitude*math.Sin(freq*t)
	}
}

// Chain runs updates in order.
func Chain(fns ...UpdateFunc) UpdateFunc {
	return func(o *Object, dt, t float64) {
		for _, fn := range fns {
			if fn != nil {
				fn(o, dt, t)
			}
		}
	}
}
