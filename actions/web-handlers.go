package actions

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/ghodss/yaml"
	"github.com/relloyd/deltapipe/config"
	"github.com/relloyd/deltapipe/logger"
)

type WebServerResponse uint32

const (
	Okay WebServerResponse = iota + 1
	Error
)

func (w WebServerResponse) MarshalJSON() ([]byte, error) {
	var retval string
	switch w {
	case Okay:
		retval = "ok"
	case Error:
		retval = "error"
	default:
		err := fmt.Errorf("unhandled WebServerResponse value in MarshalJSON() conversion")
		return nil, err
	}
	return json.Marshal(retval)
}

type ResponseSimple struct {
	ServerStatus WebServerResponse `json:"status"`
}

type ResponseTrigger struct {
	Status  WebServerResponse `json:"status"`
	Message string            `json:"message"`
	Result  *RunResult        `json:"result,omitempty"`
}

func GetHandlerHealth(log logger.Logger) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseSimple{ServerStatus: Okay})
	}
}

func GetHandlerStopServer(log logger.Logger, chanStop chan string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		select {
		case chanStop <- "stop":
			log.Info("Stop signal sent")
		default: // a stop is already pending.
		}
		respond(log, w, ResponseSimple{ServerStatus: Okay})
	}
}

// GetHandlerTrigger runs the pipeline synchronously for the trigger in the request body.
// The body may be JSON or YAML. The request context cancels the run if the client goes away.
func GetHandlerTrigger(log logger.Logger, runner TriggerRunner) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := ioutil.ReadAll(io.LimitReader(r.Body, maxTriggerBytes))
		if err != nil {
			logAndRespond(log, err, w, http.StatusBadRequest,
				ResponseTrigger{Status: Error, Message: fmt.Sprintf("error reading request body: %v", err)})
			return
		}
		t := config.Trigger{}
		if err = yaml.Unmarshal(b, &t); err != nil {
			logAndRespond(log, err, w, http.StatusBadRequest,
				ResponseTrigger{Status: Error, Message: fmt.Sprintf("error unmarshalling trigger: %v", err)})
			return
		}
		res, err := runner.Run(r.Context(), t)
		if err != nil {
			logAndRespond(log, err, w, StatusCodeForError(err),
				ResponseTrigger{Status: Error, Message: err.Error(), Result: &res})
			return
		}
		w.WriteHeader(http.StatusOK)
		respond(log, w, ResponseTrigger{Status: Okay, Message: "run completed", Result: &res})
	}
}

// logAndRespond will log the error, write the status code and r to w.
func logAndRespond(log logger.Logger, err error, w http.ResponseWriter, statusCode int, r ResponseTrigger) {
	log.Error(err)
	w.WriteHeader(statusCode)
	respond(log, w, r)
}

// respond will marshal i to a string and write it to w.
func respond(log logger.Logger, w http.ResponseWriter, i interface{}) {
	j, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		log.Panic(err)
	}
	_, err = fmt.Fprint(w, string(j))
	if err != nil {
		log.Error(err)
	}
}
