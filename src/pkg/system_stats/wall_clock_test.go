package system_stats_test

import (
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/cloudfoundry/ticks-release/src/pkg/system_stats"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Wall Clock", func() {
	It("reads the current time in nanoseconds", func() {
		before := time.Now().UnixNano()
		nanos, err := system_stats.WallClockNanos()
		after := time.Now().UnixNano()

		Expect(err).ToNot(HaveOccurred())
		Expect(nanos).To(BeNumerically(">=", before-int64(time.Millisecond)))
		Expect(nanos).To(BeNumerically("<=", after+int64(time.Millisecond)))
	})

	It("agrees with date", func() {
		out, err := exec.Command("date", "+%s%N").Output()
		if err != nil {
			Skip("date is not available")
		}

		fromDate, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
		if err != nil {
			Skip("date does not support %N")
		}

		nanos, err := system_stats.WallClockNanos()
		Expect(err).ToNot(HaveOccurred())
		Expect(nanos).To(BeNumerically("~", fromDate, int64(5*time.Second)))
	})
})
