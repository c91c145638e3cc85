package runtime

// Must panics if err is non-nil. Only use it for setup code that cannot recover.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
