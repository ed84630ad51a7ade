package awsmock

var CheckOutput = checkOutput
