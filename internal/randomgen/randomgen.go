// Package randomgen produces random but valid test data for the integration
// tests and the load-test client.
package randomgen

import (
	"fmt"
	"math/rand"
)

var firstNames = []string{
	"Adam", "Berta", "Carla", "David", "Erika", "Frank", "Gisela", "Hans",
	"Ines", "Jirka", "Karel", "Lenka", "Marek", "Nadia", "Otto", "Pavla",
}

var lastNames = []string{
	"Bauer", "Dvorak", "Fischer", "Horak", "Krummacker", "Mustermann",
	"Novak", "Richter", "Schmidt", "Svoboda", "Vogel", "Wagner",
}

// Username returns a random lowercase username that is unique with high
// probability.
func Username() string {
	return fmt.Sprintf("user%d", rand.Int63())
}

// Name returns a random full name.
func Name() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

// PhoneNumber returns a random phone number in E.164 format.
func PhoneNumber() string {
	number := fmt.Sprintf("+%d", 1+rand.Intn(9))
	for i := 0; i < 10; i++ {
		number += fmt.Sprintf("%d", rand.Intn(10))
	}
	return number
}
