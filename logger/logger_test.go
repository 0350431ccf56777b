package logger_test

import (
	"bytes"
	"encoding/json"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/relloyd/deltapipe/logger"
)

var _ = Describe("Logger", func() {
	var (
		log       *logger.LoggerImpl
		logOutput *bytes.Buffer
		actual    map[string]interface{}
	)

	BeforeEach(func() {
		log = logger.NewJSONLogger("test-service", "debug", true)
		logOutput = bytes.NewBufferString("")
		log.SetOutput(logOutput)
		actual = nil
	})

	It("Should have `test-service` as service name", func() {
		log.Info("Testing")
		Expect(json.Unmarshal(logOutput.Bytes(), &actual)).To(Succeed())
		Expect(actual["service"]).To(Equal("test-service"))
	})

	It("Should have info as log level", func() {
		log.Info("Testing")
		Expect(json.Unmarshal(logOutput.Bytes(), &actual)).To(Succeed())
		Expect(actual["level"]).To(Equal("info"))
	})

	It("Should have warning as log level", func() {
		log.Warn("Testing")
		Expect(json.Unmarshal(logOutput.Bytes(), &actual)).To(Succeed())
		Expect(actual["level"]).To(Equal("warning"))
	})

	It("Should have error as log level and a stack trace", func() {
		log.Error("Testing")
		Expect(json.Unmarshal(logOutput.Bytes(), &actual)).To(Succeed())
		Expect(actual["level"]).To(Equal("error"))
		Expect(actual["stackTrace"]).ToNot(BeNil())
	})

	It("Should have `Testing` as msg", func() {
		log.Info("Testing")
		Expect(json.Unmarshal(logOutput.Bytes(), &actual)).To(Succeed())
		Expect(actual["msg"]).To(Equal("Testing"))
	})

	It("Should carry fields added by WithField", func() {
		log.WithField("runId", "abc123").Info("Testing")
		Expect(json.Unmarshal(logOutput.Bytes(), &actual)).To(Succeed())
		Expect(actual["runId"]).To(Equal("abc123"))
		Expect(actual["service"]).To(Equal("test-service"))
	})
})
