package interp

// @generated from run_test.go

//go:generate go run ../scripts/gen_expects.go -- run_test.go run_expects_test.go

import "time"

func withRunOptions(opts ...Option) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.withOptions(opts...)
	}
}

func withRunSource(lines ...string) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.withSource(lines...)
	}
}

func withRunVar(name string, v Value) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.withVar(name, v)
	}
}

func withRunInput(input string) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.withInput(input)
	}
}

func withRunSeed(seed int64) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.withSeed(seed)
	}
}

func withRunStepLimit(limit int) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.withStepLimit(limit)
	}
}

func withRunMaxDepth(depth int) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.withMaxDepth(depth)
	}
}

func withRunTimeout(timeout time.Duration) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.withTimeout(timeout)
	}
}

func expectRunError(err error) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.expectError(err)
	}
}

func expectRunErrorMessage(mess string) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.expectErrorMessage(mess)
	}
}

func expectRunOutput(lines ...string) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.expectOutput(lines...)
	}
}

func expectRunRawOutput(output string) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.expectRawOutput(output)
	}
}

func expectRunVar(name string, v Value) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.expectVar(name, v)
	}
}

func expectRunUnbound(name string) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.expectUnbound(name)
	}
}

func expectRunResult(v Value) func(runTestCase) runTestCase {
	return func(rt runTestCase) runTestCase {
		return rt.expectResult(v)
	}
}
