package app_info

// NAME the name of the application
const NAME = "sweep"

// VERSION the current version of the application
const VERSION = "v0.1.0"
