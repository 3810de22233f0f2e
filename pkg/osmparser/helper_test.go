package osmparser

import "fmt"

func sprintfOsm(extraWays string) string {
	return fmt.Sprintf(testOsmXML, extraWays)
}
