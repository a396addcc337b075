package pricing

// ServiceEntry is one row of the static service reference table used
// for fuzzy discovery: the exact catalog serviceName, its family, and
// the loose names people actually type for it.
type ServiceEntry struct {
	ServiceName   string
	ServiceFamily string
	Aliases       []string
}

// referenceTable is loaded once at process start and never mutated.
// Service names must match the catalog's exact casing since the
// catalog filter is case-sensitive.
var referenceTable = []ServiceEntry{
	{
		ServiceName:   "Azure App Service",
		ServiceFamily: "Compute",
		Aliases:       []string{"app service", "app services", "web app", "web apps", "websites", "web service", "web hosting", "hosting plans"},
	},
	{
		ServiceName:   "Virtual Machines",
		ServiceFamily: "Compute",
		Aliases:       []string{"vm", "vms", "virtual machine", "compute", "instances"},
	},
	{
		ServiceName:   "Storage",
		ServiceFamily: "Storage",
		Aliases:       []string{"blob", "blob storage", "file storage", "disk", "disks", "object storage"},
	},
	{
		ServiceName:   "Azure SQL Database",
		ServiceFamily: "Databases",
		Aliases:       []string{"sql", "sql database", "sql server", "database", "relational database"},
	},
	{
		ServiceName:   "Azure Cosmos DB",
		ServiceFamily: "Databases",
		Aliases:       []string{"cosmos", "cosmosdb", "cosmos db", "document db", "nosql"},
	},
	{
		ServiceName:   "Azure Kubernetes Service",
		ServiceFamily: "Compute",
		Aliases:       []string{"kubernetes", "aks", "k8s", "container service", "containers"},
	},
	{
		ServiceName:   "Azure Functions",
		ServiceFamily: "Compute",
		Aliases:       []string{"functions", "function app", "serverless"},
	},
	{
		ServiceName:   "Azure Cache for Redis",
		ServiceFamily: "Databases",
		Aliases:       []string{"redis", "cache"},
	},
	{
		ServiceName:   "Azure AI services",
		ServiceFamily: "AI + Machine Learning",
		Aliases:       []string{"ai", "cognitive", "cognitive services", "machine learning"},
	},
	{
		ServiceName:   "Azure OpenAI",
		ServiceFamily: "AI + Machine Learning",
		Aliases:       []string{"openai", "gpt", "llm"},
	},
	{
		ServiceName:   "Virtual Network",
		ServiceFamily: "Networking",
		Aliases:       []string{"networking", "network", "vnet"},
	},
	{
		ServiceName:   "Load Balancer",
		ServiceFamily: "Networking",
		Aliases:       []string{"load balancer", "lb"},
	},
	{
		ServiceName:   "Application Gateway",
		ServiceFamily: "Networking",
		Aliases:       []string{"application gateway", "app gateway", "gateway"},
	},
	{
		ServiceName:   "Bandwidth",
		ServiceFamily: "Networking",
		Aliases:       []string{"bandwidth", "egress", "data transfer"},
	},
	{
		ServiceName:   "Azure Monitor",
		ServiceFamily: "Management and Governance",
		Aliases:       []string{"monitor", "monitoring", "logs", "log analytics"},
	},
	{
		ServiceName:   "Container Registry",
		ServiceFamily: "Containers",
		Aliases:       []string{"acr", "container registry", "registry", "docker registry"},
	},
}
