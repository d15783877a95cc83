package cmd

func RegisterBaseCommands() {
	rootCmd.AddCommand(initCmd)

	// Collections
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(movementsCmd)
	rootCmd.AddCommand(browseCmd)

	// Aggregates
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)

	// Web dashboard
	rootCmd.AddCommand(serveCmd)
}
