// Package dotenv loads KEY=value assignments from a local override file into
// an environment without replacing values that were already set externally.
package dotenv
