package lys

// Version of the Lys language and console.
const Version = "0.2.0"
