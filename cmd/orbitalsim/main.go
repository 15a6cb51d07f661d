// Command orbitalsim drives the orbital package through the core
// specification's six literal end-to-end scenarios from the command line.
package main

func main() {
	Execute()
}
