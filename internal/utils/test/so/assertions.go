package so

import (
	"github.com/smartystreets/assertions"
)

// set of assertions, typecast from their smartystreets equivalents
var (
	ShouldEqual               = assertions.ShouldEqual
	ShouldResemble            = assertions.ShouldResemble
	ShouldBeNil               = assertions.ShouldBeNil
	ShouldBeBlank             = assertions.ShouldBeBlank
	ShouldHaveLength          = assertions.ShouldHaveLength
	ShouldContainSubstring    = assertions.ShouldContainSubstring
	ShouldNotContainSubstring = assertions.ShouldNotContainSubstring
	ShouldStartWith           = assertions.ShouldStartWith
)
