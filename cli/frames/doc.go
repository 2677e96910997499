// Command frames is an interactive terminal client for frame servers.
//
// It loads the home frame through a frame proxy and lets the user press
// buttons, set input text and follow the stack of responses.
package main
