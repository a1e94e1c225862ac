// Package info is the model-catalog facade of the FlexStack platform.
package info
