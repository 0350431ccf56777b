package shared

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/relloyd/deltapipe/constants"
	"github.com/xo/dburl"
)

// ConnectionDetails holds the credentials for one warehouse connection.
type ConnectionDetails struct {
	Driver     string `errorTxt:"warehouse driver" mandatory:"yes"`
	Hostname   string `errorTxt:"server hostname" mandatory:"yes"`
	Port       int
	HTTPPath   string `errorTxt:"http path" mandatory:"yes"`
	Token      string `errorTxt:"access token" mandatory:"yes"`
	Catalog    string
	Schema     string
	StagingDir string // local directory that PUT statements may read from.
}

// String redacts the token and pretty-prints the contents of ConnectionDetails.
func (c ConnectionDetails) String() string {
	token := "xxxxx"
	if c.Token == "" {
		token = "<unset>"
	}
	return fmt.Sprintf("driver=%v host=%v port=%v path=%v token=%v catalog=%v schema=%v",
		c.Driver, c.Hostname, c.GetPort(), c.HTTPPath, token, c.Catalog, c.Schema)
}

func (c ConnectionDetails) GetPort() int {
	if c.Port == 0 {
		return constants.DatabricksPort
	}
	return c.Port
}

// OdbcDsn returns a dburl style DSN for the Simba Spark ODBC driver that Databricks distributes.
func (c ConnectionDetails) OdbcDsn() string {
	q := url.Values{}
	q.Set("HTTPPath", c.HTTPPath)
	q.Set("SSL", "1")
	q.Set("ThriftTransport", "2")
	q.Set("AuthMech", "3")
	if c.Catalog != "" {
		q.Set("Catalog", c.Catalog)
	}
	if c.Schema != "" {
		q.Set("Schema", c.Schema)
	}
	u := url.URL{
		Scheme:   "odbc+" + strings.Replace(constants.OdbcDriverName, " ", "+", -1),
		User:     url.UserPassword("token", c.Token),
		Host:     fmt.Sprintf("%v:%v", c.Hostname, c.GetPort()),
		Path:     "/",
		RawQuery: q.Encode(),
	}
	return u.String()
}

// OdbcConnectString converts OdbcDsn into the driver and connect string that database/sql needs.
func (c ConnectionDetails) OdbcConnectString() (driver string, dsn string, err error) {
	u, err := dburl.Parse(c.OdbcDsn())
	if err != nil {
		return "", "", errors.Wrap(err, "error parsing ODBC DSN")
	}
	return u.Driver, u.DSN, nil
}
