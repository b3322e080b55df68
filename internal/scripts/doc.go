// Package scripts contains motion script components. Each script registers
// itself with the engine by name so scenes can create it from props.
package scripts
